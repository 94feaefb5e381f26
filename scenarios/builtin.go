// Package scenarios holds the demonstrations shipped with optrun and
// loads user defined ones from YAML.
package scenarios

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pouriyajamshidi/optrun"
	"github.com/pouriyajamshidi/optrun/printers"
)

// ErrUnknownScenario is returned by Lookup for names that are not built in.
var ErrUnknownScenario = errors.New("unknown scenario")

// SeenWant is how many integers the mutate-local scenario expects its filter to see.
const SeenWant = optrun.RangeEnd - optrun.RangeStart

// AccumulateWant is the text the accumulate scenario must build.
const AccumulateWant = "0x0, 0x1, 0x4, 0x5, 0x8, 0x9, "

func isOdd(i int) bool {
	return i%2 == 1
}

// Builtin returns the built-in scenarios in their canonical order.
// Every call returns fresh closures, so state never leaks between runs.
func Builtin() []optrun.Scenario {
	return []optrun.Scenario{
		{
			Name:        "no-filter",
			Description: "no filter, nothing is printed",
		},
		{
			Name:        "inner-fn",
			Description: "named function as filter",
			Configure: func(base optrun.Opt, _ optrun.Emitter) (optrun.Opt, optrun.Verify) {
				return base.WithFilter(isOdd), nil
			},
		},
		{
			Name:        "stateless",
			Description: "stateless closure",
			Configure: func(base optrun.Opt, _ optrun.Emitter) (optrun.Opt, optrun.Verify) {
				return base.WithFilter(func(i int) bool { return i%3 == 0 }), nil
			},
		},
		{
			Name:        "read-local",
			Description: "closure reading a local variable",
			Configure: func(base optrun.Opt, _ optrun.Emitter) (optrun.Opt, optrun.Verify) {
				primes := []int{2, 3, 5, 7}
				return base.WithFilter(func(i int) bool { return slices.Contains(primes, i) }), nil
			},
		},
		{
			Name:        "mutate-local",
			Description: "closure mutating a local variable",
			Configure: func(base optrun.Opt, _ optrun.Emitter) (optrun.Opt, optrun.Verify) {
				var seen []int
				opt := base.WithFilter(func(i int) bool {
					seen = append(seen, i)
					return true
				})

				return opt, func() error {
					if len(seen) != SeenWant {
						return fmt.Errorf("%w: filter saw %d integers, want %d", optrun.ErrAssertion, len(seen), SeenWant)
					}
					return nil
				}
			},
		},
		{
			Name:        "two-closures",
			Description: "filter and hex printer closures",
			Configure: func(base optrun.Opt, emit optrun.Emitter) (optrun.Opt, optrun.Verify) {
				return base.
					WithFilter(func(i int) bool { return i&2 == 0 }).
					WithAction(emit(printers.FormatHex)), nil
			},
		},
		{
			Name:        "accumulate",
			Description: "printer accumulating into a string",
			Configure: func(base optrun.Opt, _ optrun.Emitter) (optrun.Opt, optrun.Verify) {
				var output strings.Builder
				opt := base.
					WithFilter(func(i int) bool { return i&2 == 0 }).
					WithAction(func(i int) { output.WriteString(printers.FormatAltHex.Value(i) + ", ") })

				return opt, func() error {
					if output.String() != AccumulateWant {
						return fmt.Errorf("%w: accumulated %q, want %q", optrun.ErrAssertion, output.String(), AccumulateWant)
					}
					return nil
				}
			},
		},
	}
}

// Names returns the names of the built-in scenarios in order.
func Names() []string {
	builtin := Builtin()
	names := make([]string, len(builtin))
	for i, sc := range builtin {
		names[i] = sc.Name
	}
	return names
}

// Lookup returns the built-in scenarios with the given names, in the order asked for.
func Lookup(names ...string) ([]optrun.Scenario, error) {
	builtin := Builtin()
	found := make([]optrun.Scenario, 0, len(names))

	for _, name := range names {
		idx := slices.IndexFunc(builtin, func(sc optrun.Scenario) bool { return sc.Name == name })
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownScenario, name, strings.Join(Names(), ", "))
		}
		found = append(found, builtin[idx])
	}

	return found, nil
}
