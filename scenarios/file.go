package scenarios

import (
	"errors"
	"fmt"
	"io"

	"github.com/pouriyajamshidi/optrun"
	"github.com/pouriyajamshidi/optrun/expression"
	"github.com/pouriyajamshidi/optrun/printers"
	"gopkg.in/yaml.v3"
)

// ErrNoScenarios is returned by Load when the file defines no scenarios.
var ErrNoScenarios = errors.New("no scenarios defined")

// Definition is a scenario as written in a YAML file.
type Definition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Filter is an expression over i, see the expression package.
	Filter string `yaml:"filter"`
	// Format is optional, the runner's format is used when empty.
	Format string `yaml:"format"`
}

// File is the layout of a scenario file.
type File struct {
	Scenarios []Definition `yaml:"scenarios"`
}

// Load reads scenario definitions from r and compiles them.
func Load(r io.Reader) ([]optrun.Scenario, error) {
	var f File

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode scenario file: %w", ErrNoScenarios)
		}
		return nil, fmt.Errorf("decode scenario file: %w", err)
	}

	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("decode scenario file: %w", ErrNoScenarios)
	}

	seen := make(map[string]bool, len(f.Scenarios))
	loaded := make([]optrun.Scenario, 0, len(f.Scenarios))

	for idx, def := range f.Scenarios {
		if def.Name == "" {
			return nil, fmt.Errorf("scenario #%d: missing name", idx+1)
		}

		if seen[def.Name] {
			return nil, fmt.Errorf("scenario %s: defined more than once", def.Name)
		}
		seen[def.Name] = true

		sc, err := FromDefinition(def)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, sc)
	}

	return loaded, nil
}

// FromExpression builds a scenario filtering with the expression src.
// An empty format keeps the runner's format.
func FromExpression(name, src, format string) (optrun.Scenario, error) {
	return FromDefinition(Definition{Name: name, Filter: src, Format: format})
}

// FromDefinition compiles a single definition.
func FromDefinition(def Definition) (optrun.Scenario, error) {
	// Compile once up front so errors surface before anything runs.
	if _, err := expression.Compile(def.Filter); err != nil {
		return optrun.Scenario{}, fmt.Errorf("scenario %s: %w", def.Name, err)
	}

	var (
		format    printers.Format
		hasFormat = def.Format != ""
	)
	if hasFormat {
		f, err := printers.ParseFormat(def.Format)
		if err != nil {
			return optrun.Scenario{}, fmt.Errorf("scenario %s: %w", def.Name, err)
		}
		format = f
	}

	description := def.Description
	if description == "" {
		description = def.Filter
	}

	return optrun.Scenario{
		Name:        def.Name,
		Description: description,
		Configure: func(base optrun.Opt, emit optrun.Emitter) (optrun.Opt, optrun.Verify) {
			// a fresh predicate per run keeps Err scoped to that run
			p, _ := expression.Compile(def.Filter)

			opt := base.WithFilter(p.Filter())
			if hasFormat {
				opt = opt.WithAction(emit(format))
			}

			return opt, p.Err
		},
	}, nil
}
