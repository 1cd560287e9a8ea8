package graph_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/instr"
)

func expectInvalidAt(err error, index int) {
	Expect(err).To(HaveOccurred())
	Expect(errors.Is(err, graph.ErrGraphInvalid)).To(BeTrue())

	var ie *graph.InvalidError
	Expect(errors.As(err, &ie)).To(BeTrue())
	Expect(ie.Index).To(Equal(index))
}

var _ = Describe("Validate", func() {
	It("should reject an empty graph", func() {
		_, err := graph.Validate(graph.Graph{}, graph.DropUnreachable)
		expectInvalidAt(err, -1)
	})

	It("should reject goto opcodes with their index", func() {
		g := graph.Graph{
			instr.NewInstruction(instr.RC045, 1),
			instr.NewInstruction(instr.RC090, 2),
			instr.NewInstruction(instr.GO2, instr.End),
		}

		_, err := graph.Validate(g, graph.DropUnreachable)
		expectInvalidAt(err, 2)
	})

	It("should reject dangling labels", func() {
		g := graph.Graph{
			instr.NewBranch(instr.SWLK, 1, 7),
			instr.NewInstruction(instr.RC090, instr.End),
		}

		_, err := graph.Validate(g, graph.DropUnreachable)
		expectInvalidAt(err, 0)
	})

	It("should reject an err label on an opcode without err pin", func() {
		g := graph.Graph{
			instr.NewBranch(instr.RC045, instr.End, 0),
		}

		_, err := graph.Validate(g, graph.DropUnreachable)
		expectInvalidAt(err, 0)
	})

	It("should reject EMPTY with a real continuation", func() {
		g := graph.Graph{
			instr.NewInstruction(instr.Empty, 0),
		}

		_, err := graph.Validate(g, graph.DropUnreachable)
		expectInvalidAt(err, 0)
	})

	It("should reject a reachable placeholder", func() {
		g := graph.Graph{
			instr.NewInstruction(instr.RC045, 1),
			instr.Placeholder(),
		}

		_, err := graph.Validate(g, graph.DropUnreachable)
		expectInvalidAt(err, 1)
	})

	It("should drop unreachable instructions by default", func() {
		g := graph.Graph{
			instr.NewBranch(instr.SWLK, 2, instr.End),
			instr.NewInstruction(instr.RC045, 0),
			instr.NewInstruction(instr.RC090, instr.Undefined),
			instr.Placeholder(),
		}

		live, err := graph.Validate(g, graph.DropUnreachable)
		Expect(err).NotTo(HaveOccurred())
		Expect(live.Order()).To(Equal([]int{0, 2}))
		Expect(live.Contains(1)).To(BeFalse())
		Expect(live.Contains(3)).To(BeFalse())
	})

	It("should reject unreachable instructions when asked", func() {
		g := graph.Graph{
			instr.NewInstruction(instr.RC045, instr.End),
			instr.NewInstruction(instr.RC090, instr.End),
		}

		_, err := graph.Validate(g, graph.RejectUnreachable)
		expectInvalidAt(err, 1)
	})

	It("should count in-degree over live edges", func() {
		g := graph.Graph{
			instr.NewBranch(instr.Move, 1, 2),
			instr.NewInstruction(instr.RC045, 2),
			instr.NewBranch(instr.Dig, 0, 2),
		}

		live, err := graph.Validate(g, graph.DropUnreachable)
		Expect(err).NotTo(HaveOccurred())
		Expect(live.Order()).To(Equal([]int{0, 1, 2}))
		Expect(live.InDegree(0)).To(Equal(1))
		Expect(live.InDegree(1)).To(Equal(1))
		Expect(live.InDegree(2)).To(Equal(3))
		Expect(live.Edges()).To(HaveLen(5))
	})
})
