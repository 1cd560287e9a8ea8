package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/instr"
	"github.com/sarchlab/gridcc/program"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Occupied      int
	LintIssues    []Issue
	StructIssues  []Issue
	FlowIssues    []Issue
	Oracle        string
	EquivalentErr error
	Equivalent    bool
	Program       *program.Program
}

// GenerateReport lints p and checks it against g under o.
func GenerateReport(
	g graph.Graph,
	p *program.Program,
	cells map[instr.Label]int,
	o Oracle,
	oracleName string,
	maxSteps int,
) *VerificationReport {
	report := &VerificationReport{
		Occupied: p.Occupied(),
		Oracle:   oracleName,
		Program:  p,
	}

	report.LintIssues = RunLint(p)

	for _, issue := range report.LintIssues {
		if issue.Type == IssueStruct {
			report.StructIssues = append(report.StructIssues, issue)
		} else {
			report.FlowIssues = append(report.FlowIssues, issue)
		}
	}

	report.EquivalentErr = CheckEquivalence(g, p, cells, o, maxSteps)
	report.Equivalent = report.EquivalentErr == nil

	return report
}

// Passed reports whether the program has no STRUCT issues and is
// equivalent to its graph.
func (r *VerificationReport) Passed() bool {
	return len(r.StructIssues) == 0 && r.Equivalent
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "GRID PROGRAM VERIFICATION REPORT")
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Occupied cells: %d of %d\n", r.Occupied, r.Program.Size())

	fmt.Fprintln(w, "\nSTAGE 1: STATIC LINT CHECKS")

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found.")
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Type", "Cell", "Slot", "Message"})

		for _, issue := range r.LintIssues {
			cell := "-"
			if issue.X >= 0 && issue.Y >= 0 {
				cell = fmt.Sprintf("(%d, %d)", issue.X, issue.Y)
			}

			slot := "-"
			if issue.Slot >= 0 {
				slot = fmt.Sprint(issue.Slot)
			}

			t.AppendRow(table.Row{issue.Type, cell, slot, issue.Message})
		}

		t.AppendFooter(table.Row{"", "", "Total", len(r.LintIssues)})
		t.Render()
	}

	fmt.Fprintf(w, "\nSTAGE 2: EQUIVALENCE (%s)\n", r.Oracle)

	if r.Equivalent {
		fmt.Fprintln(w, "Program follows the graph.")
	} else {
		fmt.Fprintf(w, "Program diverges: %v\n", r.EquivalentErr)
	}

	fmt.Fprintln(w, "\n"+separator)

	if r.Passed() {
		fmt.Fprintln(w, "PASSED")
	} else {
		fmt.Fprintln(w, "FAILED")
	}
}

// SaveReportToFile writes the report to a file.
func (r *VerificationReport) SaveReportToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	r.WriteReport(f)

	return nil
}
