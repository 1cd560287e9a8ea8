package compiler_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math/rand"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gridcc/compiler"
	"github.com/sarchlab/gridcc/config"
	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/instr"
	"github.com/sarchlab/gridcc/verify"
)

func mustBuild(b config.Builder) config.Config {
	cfg, err := b.Build()
	Expect(err).NotTo(HaveOccurred())

	return cfg
}

func expectSound(g graph.Graph, res *compiler.Result) {
	Expect(verify.RunLint(res.Program)).To(BeEmpty())

	oracles := []verify.Oracle{
		verify.AlwaysOK,
		verify.Sequence(false),
		verify.Sequence(true, false),
		verify.Seeded(1),
		verify.Seeded(2),
	}

	for _, o := range oracles {
		Expect(verify.CheckEquivalence(g, res.Program, res.Cells(), o, 200)).To(Succeed())
	}
}

var _ = Describe("Compiler", func() {
	It("should place a linear chain on consecutive cells of row 0", func() {
		g := graph.Graph{
			instr.NewInstruction(instr.RC045, 1),
			instr.NewInstruction(instr.RC090, 2),
			instr.NewInstruction(instr.RC135, instr.End),
		}

		res, err := compiler.Compile(g)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Placement).To(Equal([]instr.Label{
			instr.Coord(0, 0), instr.Coord(1, 0), instr.Coord(2, 0),
		}))
		Expect(res.Movers).To(Equal(0))
		Expect(res.Jumps).To(Equal(0))
		Expect(res.Slots).To(Equal(0))

		p := res.Program
		Expect(p.At(0, 0)).To(Equal(instr.NewInstruction(instr.RC045, instr.Coord(1, 0))))
		Expect(p.At(1, 0)).To(Equal(instr.NewInstruction(instr.RC090, instr.Coord(2, 0))))
		Expect(p.At(2, 0)).To(Equal(instr.NewInstruction(instr.RC135, instr.End)))
		Expect(p.Occupied()).To(Equal(3))

		for n := 0; n < instr.NamedLabelNumber; n++ {
			Expect(p.Label(n)).To(Equal(instr.End))
		}

		expectSound(g, res)
	})

	It("should route an err edge through movers in the gap rows", func() {
		g := graph.Graph{
			instr.NewBranch(instr.SWLK, 1, 2),
			instr.NewInstruction(instr.RC045, 2),
			instr.NewInstruction(instr.RC090, instr.End),
		}

		cfg := mustBuild(config.NewBuilder().WithLayouts(config.DefaultLayouts(instr.Width)[0]))
		res, err := compiler.New(cfg).Compile(g)
		Expect(err).NotTo(HaveOccurred())

		p := res.Program
		Expect(p.At(0, 0)).To(Equal(instr.NewBranch(instr.SWLK, instr.Coord(1, 0), instr.Coord(0, 1))))
		Expect(p.At(0, 1)).To(Equal(instr.NewInstruction(instr.PCD, instr.Coord(1, 1))))
		Expect(p.At(1, 1)).To(Equal(instr.NewInstruction(instr.PCD, instr.Coord(2, 1))))
		Expect(p.At(2, 1)).To(Equal(instr.NewInstruction(instr.PCW, instr.Coord(2, 0))))
		Expect(res.Movers).To(Equal(3))
		Expect(res.Jumps).To(Equal(0))
		Expect(res.Layout).To(Equal("laned"))

		expectSound(g, res)
	})

	It("should route a self loop back into its instruction", func() {
		g := graph.Graph{
			instr.NewBranch(instr.SWLK, 0, instr.End),
		}

		res, err := compiler.Compile(g)
		Expect(err).NotTo(HaveOccurred())

		p := res.Program
		Expect(p.At(0, 0)).To(Equal(instr.NewBranch(instr.SWLK, instr.Coord(1, 0), instr.End)))
		Expect(p.At(1, 0)).To(Equal(instr.NewInstruction(instr.PCA, instr.Coord(0, 0))))
		Expect(res.Movers).To(Equal(1))

		expectSound(g, res)
	})

	Context("when no mover path exists", func() {
		var g graph.Graph

		BeforeEach(func() {
			g = graph.Graph{
				instr.NewInstruction(instr.RC045, 1),
				instr.NewInstruction(instr.RC090, 2),
				instr.NewInstruction(instr.RC135, 1),
			}
		})

		It("should jump through a named label", func() {
			cfg := mustBuild(config.NewBuilder().
				WithWidth(4).
				WithHeight(1).
				WithLayouts(config.Dense))

			res, err := compiler.New(cfg).Compile(g)
			Expect(err).NotTo(HaveOccurred())

			p := res.Program
			Expect(p.At(3, 0)).To(Equal(instr.NewInstruction(instr.GO0, instr.Coord(1, 0))))
			Expect(p.Label(0)).To(Equal(instr.Coord(1, 0)))
			Expect(res.Jumps).To(Equal(1))
			Expect(res.Slots).To(Equal(1))

			expectSound(g, res)
		})

		It("should fail to route without named labels", func() {
			cfg := mustBuild(config.NewBuilder().
				WithWidth(4).
				WithHeight(1).
				WithNamedLabels(0).
				WithLayouts(config.Dense))

			res, err := compiler.New(cfg).Compile(g)
			Expect(res).To(BeNil())
			Expect(errors.Is(err, compiler.ErrRoutingFailure)).To(BeTrue())

			var re *compiler.RoutingError
			Expect(errors.As(err, &re)).To(BeTrue())
			Expect(re.From).To(Equal(2))
			Expect(re.To).To(Equal(1))
		})
	})

	Context("when mover chains are bounded", func() {
		g := graph.Graph{
			instr.NewBranch(instr.SWLK, 1, 2),
			instr.NewInstruction(instr.RC045, 2),
			instr.NewInstruction(instr.RC090, instr.End),
		}

		compileWithChain := func(chain int) *compiler.Result {
			cfg := mustBuild(config.NewBuilder().
				WithLayouts(config.DefaultLayouts(instr.Width)[0]).
				WithMaxMoverChain(chain))

			res, err := compiler.New(cfg).Compile(g)
			Expect(err).NotTo(HaveOccurred())
			expectSound(g, res)

			return res
		}

		It("should keep chains within the bound as movers", func() {
			for _, chain := range []int{0, 3} {
				res := compileWithChain(chain)
				Expect(res.Movers).To(Equal(3), "chain %d", chain)
				Expect(res.Jumps).To(Equal(0), "chain %d", chain)
			}
		})

		It("should prefer a far jump over a longer chain", func() {
			for _, chain := range []int{1, 2} {
				res := compileWithChain(chain)
				Expect(res.Movers).To(Equal(0), "chain %d", chain)
				Expect(res.Jumps).To(Equal(1), "chain %d", chain)
				Expect(res.Slots).To(Equal(1), "chain %d", chain)
			}
		})
	})

	Context("when two loops both need far jumps", func() {
		// Row 0 runs 0..5; both err pins drop into row 1, where each loop
		// closes through the cell right of its last instruction.
		g := graph.Graph{
			instr.NewBranch(instr.SWLK, 1, 6),
			instr.NewInstruction(instr.RC045, 2),
			instr.NewInstruction(instr.RC090, 3),
			instr.NewInstruction(instr.RC135, 4),
			instr.NewBranch(instr.NWLK, 5, 8),
			instr.NewInstruction(instr.RC180, instr.End),
			instr.NewInstruction(instr.CC045, 7),
			instr.NewInstruction(instr.CC090, 6),
			instr.NewInstruction(instr.CC135, 9),
			instr.NewInstruction(instr.RC045, 8),
		}

		build := func(labels int) config.Config {
			return mustBuild(config.NewBuilder().
				WithWidth(7).
				WithHeight(2).
				WithNamedLabels(labels).
				WithLayouts(config.Dense))
		}

		It("should give each destination its own named label", func() {
			res, err := compiler.New(build(2)).Compile(g)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Jumps).To(Equal(2))
			Expect(res.Slots).To(Equal(2))
			Expect(res.Program.Label(0)).To(Equal(instr.Coord(4, 1)))
			Expect(res.Program.Label(1)).To(Equal(instr.Coord(0, 1)))

			expectSound(g, res)
		})

		It("should fail once the named labels run out", func() {
			res, err := compiler.New(build(1)).Compile(g)
			Expect(res).To(BeNil())
			Expect(errors.Is(err, compiler.ErrNamedLabelBudgetExceeded)).To(BeTrue())

			var be *compiler.LabelBudgetError
			Expect(errors.As(err, &be)).To(BeTrue())
			Expect(be.From).To(Equal(7))
			Expect(be.Pin).To(Equal(instr.PinOK))
			Expect(be.To).To(Equal(6))
			Expect(be.Budget).To(Equal(1))
		})
	})

	It("should log attempts below the info level", func() {
		prev := slog.Default()
		DeferCleanup(func() { slog.SetDefault(prev) })

		var buf bytes.Buffer
		slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

		g := graph.Graph{instr.NewBranch(instr.SWLK, 0, instr.End)}

		_, err := compiler.Compile(g)
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(BeEmpty())

		slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

		_, err = compiler.Compile(g)
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("AttemptSucceeded"))
	})

	It("should reject more live instructions than cells", func() {
		cfg := mustBuild(config.NewBuilder().WithWidth(2).WithHeight(1))

		g := graph.Graph{
			instr.NewInstruction(instr.RC045, 1),
			instr.NewInstruction(instr.RC045, 2),
			instr.NewInstruction(instr.RC045, instr.End),
		}

		res, err := compiler.New(cfg).Compile(g)
		Expect(res).To(BeNil())
		Expect(errors.Is(err, compiler.ErrProgramCapacityExceeded)).To(BeTrue())

		var ce *compiler.CapacityError
		Expect(errors.As(err, &ce)).To(BeTrue())
		Expect(ce.Live).To(Equal(3))
		Expect(ce.Capacity).To(Equal(2))
	})

	It("should reject goto opcodes in the input", func() {
		g := graph.Graph{
			instr.NewInstruction(instr.RC045, 1),
			instr.NewInstruction(instr.GO0, instr.End),
		}

		res, err := compiler.Compile(g)
		Expect(res).To(BeNil())
		Expect(errors.Is(err, graph.ErrGraphInvalid)).To(BeTrue())

		var ie *graph.InvalidError
		Expect(errors.As(err, &ie)).To(BeTrue())
		Expect(ie.Index).To(Equal(1))
	})

	Context("with unreachable instructions", func() {
		g := graph.Graph{
			instr.NewInstruction(instr.RC045, instr.End),
			instr.NewInstruction(instr.RC090, 0),
		}

		It("should drop them by default", func() {
			res, err := compiler.Compile(g)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Placement[1]).To(Equal(instr.End))
			Expect(res.Cells()).To(HaveLen(1))
		})

		It("should reject them when configured", func() {
			cfg := mustBuild(config.NewBuilder().WithUnreachable(graph.RejectUnreachable))

			_, err := compiler.New(cfg).Compile(g)
			Expect(errors.Is(err, graph.ErrGraphInvalid)).To(BeTrue())
		})
	})

	It("should resolve undefined labels to a neighboring instruction or end", func() {
		g := graph.Graph{
			instr.NewBranch(instr.Move, 1, instr.Undefined),
			instr.NewInstruction(instr.RC045, instr.Undefined),
		}

		res, err := compiler.Compile(g)
		Expect(err).NotTo(HaveOccurred())

		p := res.Program
		Expect(p.At(0, 0).Ok).To(Equal(instr.Coord(1, 0)))
		Expect(p.At(0, 0).Err).To(Equal(instr.End))
		Expect(p.At(1, 0).Ok).To(Equal(instr.End))

		expectSound(g, res)
	})

	It("should keep the entry reachable when it cannot sit at the origin", func() {
		g := graph.Graph{
			instr.NewInstruction(instr.PCW, 1),
			instr.NewInstruction(instr.RC045, instr.End),
		}

		res, err := compiler.Compile(g)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Placement[0]).NotTo(Equal(instr.Coord(0, 0)))

		expectSound(g, res)
	})

	It("should lint cleanly with self check enabled", func() {
		cfg := mustBuild(config.NewBuilder().WithSelfCheck(true))

		g := graph.Graph{
			instr.NewBranch(instr.NDIG, 1, 2),
			instr.NewBranch(instr.SCRS, 0, 2),
			instr.NewBranch(instr.MovDg, 1, 3),
			instr.NewInstruction(instr.Empty, instr.End),
		}

		Expect(func() {
			res, err := compiler.New(cfg).Compile(g)
			Expect(err).NotTo(HaveOccurred())
			expectSound(g, res)
		}).NotTo(Panic())
	})

	It("should only log flow issues during self check", func() {
		cfg := mustBuild(config.NewBuilder().WithSelfCheck(true))

		g := graph.Graph{
			instr.NewInstruction(instr.PCD, 1),
			instr.NewInstruction(instr.PCA, 0),
		}

		var res *compiler.Result
		Expect(func() {
			var err error
			res, err = compiler.New(cfg).Compile(g)
			Expect(err).NotTo(HaveOccurred())
		}).NotTo(Panic())

		issues := verify.RunLint(res.Program)
		Expect(issues).NotTo(BeEmpty())
		for _, issue := range issues {
			Expect(issue.Type).To(Equal(verify.IssueFlow))
		}

		Expect(verify.CheckEquivalence(g, res.Program, res.Cells(), verify.AlwaysOK, 50)).To(Succeed())
	})

	It("should compile independent graphs concurrently", func() {
		c := compiler.New(config.Default())
		graphs := []graph.Graph{
			randomGraph(rand.New(rand.NewSource(11)), 6),
			randomGraph(rand.New(rand.NewSource(12)), 6),
			randomGraph(rand.New(rand.NewSource(13)), 6),
		}

		want := make([]*compiler.Result, len(graphs))
		for k, g := range graphs {
			res, err := c.Compile(g)
			Expect(err).NotTo(HaveOccurred())
			want[k] = res
		}

		var wg sync.WaitGroup

		got := make([]*compiler.Result, 4*len(graphs))
		errs := make([]error, len(got))

		for k := range got {
			wg.Add(1)

			go func(k int) {
				defer wg.Done()
				got[k], errs[k] = c.Compile(graphs[k%len(graphs)])
			}(k)
		}

		wg.Wait()

		for k := range got {
			Expect(errs[k]).NotTo(HaveOccurred())
			Expect(got[k].Program.Equal(want[k%len(graphs)].Program)).To(BeTrue())
		}
	})
})

var realOps = []instr.Opcode{
	instr.Move, instr.Dig, instr.SWLK, instr.NCRS, instr.SHND,
	instr.RC045, instr.CC135, instr.Empty,
}

func randomLabel(r *rand.Rand, n int) instr.Label {
	switch k := r.Intn(10); {
	case k == 0:
		return instr.End
	case k == 1:
		return instr.Undefined
	default:
		return instr.Index(r.Intn(n))
	}
}

func randomGraph(r *rand.Rand, n int) graph.Graph {
	g := make(graph.Graph, n)

	for i := range g {
		op := realOps[r.Intn(len(realOps))]

		switch {
		case op == instr.Empty:
			g[i] = instr.NewInstruction(op, instr.End)
		case op.HasErr():
			g[i] = instr.NewBranch(op, randomLabel(r, n), randomLabel(r, n))
		default:
			g[i] = instr.NewInstruction(op, randomLabel(r, n))
		}
	}

	return g
}

var _ = Describe("Compiler properties", func() {
	It("should compile every small graph into an equivalent program", func() {
		r := rand.New(rand.NewSource(2024))

		for k := 0; k < 200; k++ {
			g := randomGraph(r, 1+r.Intn(instr.NamedLabelNumber))

			res, err := compiler.Compile(g)
			Expect(err).NotTo(HaveOccurred(), "graph %v", g)
			Expect(res.Slots).To(BeNumerically("<=", instr.NamedLabelNumber))

			expectSound(g, res)
		}
	})

	It("should either fail with a typed error or stay equivalent on larger graphs", func() {
		r := rand.New(rand.NewSource(7))

		for k := 0; k < 60; k++ {
			g := randomGraph(r, 8+r.Intn(32))

			res, err := compiler.Compile(g)
			if err != nil {
				Expect(errors.Is(err, compiler.ErrNamedLabelBudgetExceeded) ||
					errors.Is(err, compiler.ErrRoutingFailure) ||
					errors.Is(err, compiler.ErrProgramCapacityExceeded)).To(BeTrue(), err.Error())

				continue
			}

			Expect(res.Slots).To(BeNumerically("<=", instr.NamedLabelNumber))
			expectSound(g, res)
		}
	})
})
