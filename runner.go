package optrun

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pouriyajamshidi/optrun/option"
	"github.com/pouriyajamshidi/optrun/printers"
	"github.com/pouriyajamshidi/optrun/statistics"
)

// ErrAssertion is returned when a scenario's verification of its captured state fails.
var ErrAssertion = errors.New("assertion failed")

// Emitter returns an action that hands integers to the runner's printer in the given format.
type Emitter func(f printers.Format) Action

// Verify checks the state captured by a scenario's closures after Run.
type Verify func() error

// Scenario describes one way of configuring an Opt.
type Scenario struct {
	Name        string
	Description string

	// Configure receives an Opt whose action already prints through the
	// runner's printer and returns the configuration to run. The returned
	// Verify may be nil.
	Configure func(base Opt, emit Emitter) (Opt, Verify)
}

// Runner executes scenarios and reports them through a Printer.
type Runner struct {
	printer        Printer
	Format         printers.Format
	ShowStatistics bool
	Statistics     statistics.Statistics
}

type RunnerOption = option.Option[Runner]

// WithPrinter configures the printer for the output of every scenario.
func WithPrinter(printer Printer) RunnerOption {
	return func(r *Runner) {
		r.printer = printer
	}
}

// WithFormat configures how values reaching the default printer action are rendered.
func WithFormat(f printers.Format) RunnerOption {
	return func(r *Runner) {
		r.Format = f
	}
}

// WithStatistics makes the runner print statistics after every scenario.
func WithStatistics(show bool) RunnerOption {
	return func(r *Runner) {
		r.ShowStatistics = show
	}
}

// NewRunner creates a runner printing in color and decimal unless configured otherwise.
func NewRunner(opts ...RunnerOption) *Runner {
	r := Runner{
		printer: printers.NewColorPrinter(),
		Format:  printers.FormatDecimal,
	}

	option.Apply(&r, opts...)

	return &r
}

// Emit returns an action that prints integers in format f.
func (r *Runner) Emit(f printers.Format) Action {
	return func(i int) {
		r.printer.PrintValue(&r.Statistics, i, f)
	}
}

// Execute runs a single scenario and returns its statistics. A failed
// verification is reported as an error wrapping ErrAssertion.
func (r *Runner) Execute(sc Scenario) (statistics.Statistics, error) {
	r.Statistics = statistics.New(sc.Name)
	r.Statistics.StartTime = time.Now()
	r.printer.PrintStart(&r.Statistics)

	opt := New().WithAction(r.Emit(r.Format))

	var verify Verify
	if sc.Configure != nil {
		opt, verify = sc.Configure(opt, r.Emit)
	}

	r.record(opt).Run()

	r.Statistics.Finalize(time.Now())

	if r.ShowStatistics {
		r.printer.PrintStatistics(&r.Statistics)
	}

	if verify != nil {
		if err := verify(); err != nil {
			return r.Statistics, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
	}

	return r.Statistics, nil
}

// ExecuteAll runs the scenarios in order. It stops at the first failing
// scenario or when ctx is done; a cancelled context is not an error.
func (r *Runner) ExecuteAll(ctx context.Context, scenarios []Scenario) ([]statistics.Statistics, error) {
	results := make([]statistics.Statistics, 0, len(scenarios))

	for _, sc := range scenarios {
		if ctx.Err() != nil {
			return results, nil
		}

		stats, err := r.Execute(sc)
		results = append(results, stats)
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// record wraps the filter and action of o so that every visit and every pass
// lands in the runner's statistics. A configuration without a filter is
// returned as is, it has nothing to visit.
func (r *Runner) record(o Opt) Opt {
	filter := o.Filter()
	if filter == nil {
		return o
	}

	action := o.Action()
	if action == nil {
		action = Print
	}

	return o.
		WithFilter(func(i int) bool {
			r.Statistics.Visit(i)
			return filter(i)
		}).
		WithAction(func(i int) {
			r.Statistics.Pass(i)
			action(i)
		})
}
