package graph

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/gridcc/instr"
)

type yamlGraph struct {
	Instructions []yamlInstruction `yaml:"instructions"`
}

type yamlInstruction struct {
	Op  string     `yaml:"op"`
	Ok  *yamlLabel `yaml:"ok"`
	Err *yamlLabel `yaml:"err"`
}

type yamlLabel struct {
	label instr.Label
}

// UnmarshalYAML accepts an instruction index, "end", or "undefined" ("_").
func (l *yamlLabel) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: label must be a scalar", node.Line)
	}

	switch strings.ToLower(node.Value) {
	case "end":
		l.label = instr.End
		return nil
	case "undefined", "_":
		l.label = instr.Undefined
		return nil
	}

	v, err := strconv.ParseUint(node.Value, 10, 32)
	if err != nil || instr.Label(v).IsQuasi() {
		return fmt.Errorf("line %d: invalid label %q", node.Line, node.Value)
	}

	l.label = instr.Label(v)

	return nil
}

func (l *yamlLabel) value() instr.Label {
	if l == nil {
		return instr.End
	}

	return l.label
}

// LoadYAML reads a graph document. Missing labels default to End.
func LoadYAML(r io.Reader) (Graph, error) {
	var doc yamlGraph

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}

	g := make(Graph, 0, len(doc.Instructions))

	for i, yi := range doc.Instructions {
		op, ok := instr.Lookup(strings.ToUpper(yi.Op))
		if !ok {
			return nil, fmt.Errorf("instruction %d: unknown opcode %q", i, yi.Op)
		}

		g = append(g, instr.Instruction{Op: op, Ok: yi.Ok.value(), Err: yi.Err.value()})
	}

	return g, nil
}

// LoadFile reads a graph document from a file.
func LoadFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer f.Close()

	return LoadYAML(f)
}
