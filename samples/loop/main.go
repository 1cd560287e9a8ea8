package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/gridcc/compiler"
	"github.com/sarchlab/gridcc/core"
	"github.com/sarchlab/gridcc/graph"
	"github.com/sarchlab/gridcc/verify"
)

//go:embed loop.yaml
var loopGraph string

func walk(res *compiler.Result) {
	engine := sim.NewSerialEngine()

	walker := core.NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithMaxSteps(200).
		Build("Walker")

	// Blocked on every third step.
	walker.Load(res.Program, verify.Sequence(true, true, false))
	walker.Start()
	engine.Run()

	core.PrintState(os.Stdout, walker)
	fmt.Printf("halted: %s after %d cells\n", walker.Reason(), len(walker.Events()))
}

func main() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: core.LevelTrace,
	})
	slog.SetDefault(slog.New(handler))

	g, err := graph.LoadYAML(strings.NewReader(loopGraph))
	if err != nil {
		panic(err)
	}

	res, err := compiler.Compile(g)
	if err != nil {
		panic(err)
	}

	res.Program.Print(os.Stdout)
	walk(res)

	atexit.Exit(0)
}
