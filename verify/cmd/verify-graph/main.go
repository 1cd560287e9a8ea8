package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sarchlab/gridcc/compiler"
	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/verify"
)

const rule = "=============================================================================="

func main() {
	seeds := flag.Int("seeds", 32, "number of seeded outcome sequences to check")
	steps := flag.Int("steps", 1000, "input instructions to follow per run")
	flag.Parse()

	programPath := "test/testbench/walk/walk.yaml"
	if flag.NArg() > 0 {
		programPath = flag.Arg(0)
	}

	g, err := graph.LoadFile(programPath)
	if err != nil {
		log.Fatalf("Failed to load graph from %s: %v", programPath, err)
	}

	res, err := compiler.Compile(g)
	if err != nil {
		log.Fatalf("Failed to compile %s: %v", programPath, err)
	}

	fmt.Println(rule)
	fmt.Println("GRAPH VERIFICATION")
	fmt.Println(rule)
	fmt.Printf("\nCompiled %d instructions from %s with layout %s\n\n",
		len(res.Cells()), programPath, res.Layout)

	res.Program.Print(os.Stdout)

	fmt.Println(rule)
	fmt.Println("STAGE 1: LINT CHECK")
	fmt.Println(rule)

	issues := verify.RunLint(res.Program)
	structural := 0

	for i, issue := range issues {
		if issue.Type == verify.IssueStruct {
			structural++
		}

		fmt.Printf("Issue %d:\n", i+1)
		fmt.Printf("  Type:     %s\n", issue.Type)
		fmt.Printf("  Location: (%d, %d)\n", issue.X, issue.Y)
		fmt.Printf("  Message:  %s\n", issue.Message)

		if issue.Details != nil {
			fmt.Printf("  Details:  %v\n", issue.Details)
		}
	}

	if len(issues) == 0 {
		fmt.Println("LINT PASSED - no issues found")
	}

	fmt.Println(rule)
	fmt.Println("STAGE 2: EQUIVALENCE")
	fmt.Println(rule)

	failed := 0

	for seed := 0; seed < *seeds; seed++ {
		err := verify.CheckEquivalence(g, res.Program, res.Cells(), verify.Seeded(uint64(seed)), *steps)
		if err != nil {
			failed++
			fmt.Printf("seed %d: %v\n", seed, err)
		}
	}

	fmt.Println(rule)
	fmt.Println("VERIFICATION SUMMARY")
	fmt.Println(rule)
	fmt.Printf("Lint:        %d issues (%d structural)\n", len(issues), structural)
	fmt.Printf("Equivalence: %d of %d seeds failed\n", failed, *seeds)

	if structural > 0 || failed > 0 {
		log.Fatalf("Verification of %s failed", programPath)
	}
}
