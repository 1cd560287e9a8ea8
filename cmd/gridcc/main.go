// Command gridcc compiles a control-flow graph written in YAML into a grid
// program and prints it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/gridcc/compiler"
	"github.com/sarchlab/gridcc/config"
	"github.com/sarchlab/gridcc/core"
	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/instr"
	"github.com/sarchlab/gridcc/verify"
)

var (
	width             = flag.Int("width", instr.Width, "instructions per grid row")
	height            = flag.Int("height", instr.Height, "rows per program")
	labels            = flag.Int("labels", instr.NamedLabelNumber, "named labels available for far jumps")
	rejectUnreachable = flag.Bool("reject-unreachable", false, "fail on instructions the entry cannot reach")
	maxChain          = flag.Int("max-chain", 0, "longest mover chain before a far jump is preferred (0: no limit)")
	verifyProgram     = flag.Bool("verify", false, "lint the program and check it against the graph")
	walk              = flag.Bool("walk", false, "walk the program on the simulated core and print the cells it visits")
	seed              = flag.Uint64("seed", 1, "seed of the outcomes used by -verify and -walk")
	steps             = flag.Int("steps", 1000, "input instructions to follow when verifying")
	trace             = flag.Bool("trace", false, "log compiler decisions and core steps as JSON on stderr")
	reportFile        = flag.String("report", "", "also save the verification report to this file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] graph.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *trace {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	if flag.NArg() != 1 {
		flag.Usage()
		atexit.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		slog.Error("gridcc failed", "Error", err.Error())
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(exitCode(err))
	}

	atexit.Exit(0)
}

func run(path string) error {
	g, err := graph.LoadFile(path)
	if err != nil {
		return err
	}

	policy := graph.DropUnreachable
	if *rejectUnreachable {
		policy = graph.RejectUnreachable
	}

	cfg, err := config.NewBuilder().
		WithWidth(*width).
		WithHeight(*height).
		WithNamedLabels(*labels).
		WithUnreachable(policy).
		WithMaxMoverChain(*maxChain).
		Build()
	if err != nil {
		return err
	}

	res, err := compiler.New(cfg).Compile(g)
	if err != nil {
		return err
	}

	res.Program.Print(os.Stdout)
	fmt.Printf("layout %s: %d movers, %d far jumps, %d named labels\n",
		res.Layout, res.Movers, res.Jumps, res.Slots)

	oracle := verify.Seeded(*seed)

	if *verifyProgram {
		report := verify.GenerateReport(g, res.Program, res.Cells(), oracle,
			fmt.Sprintf("seed %d", *seed), *steps)
		report.WriteReport(os.Stdout)

		if *reportFile != "" {
			if err := report.SaveReportToFile(*reportFile); err != nil {
				return err
			}
		}

		if !report.Passed() {
			return errors.New("verification failed")
		}
	}

	if *walk {
		c := core.Run(res.Program, oracle, *steps*(res.Program.Size()+1))
		core.PrintState(os.Stdout, c)
	}

	return nil
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, graph.ErrGraphInvalid):
		return 3
	case errors.Is(err, compiler.ErrProgramCapacityExceeded),
		errors.Is(err, compiler.ErrNamedLabelBudgetExceeded),
		errors.Is(err, compiler.ErrRoutingFailure):
		return 4
	}

	return 1
}
