package printers

import (
	"fmt"

	"github.com/pouriyajamshidi/optrun/option"
	"github.com/pouriyajamshidi/optrun/statistics"
)

// PlainPrinter is a printer that prints the results in a simple, plain text format.
type PlainPrinter struct {
	opt options
}

type PlainPrinterOption = option.Option[PlainPrinter]

func (p *PlainPrinter) options() *options {
	return &p.opt
}

// NewPlainPrinter creates a new PlainPrinter instance.
func NewPlainPrinter(opts ...PlainPrinterOption) *PlainPrinter {
	p := &PlainPrinter{}
	option.Apply(p, opts...)
	return p
}

// PrintStart prints the scenario name as a header line.
func (p *PlainPrinter) PrintStart(s *statistics.Statistics) {
	fmt.Fprintf(p.opt.writer(), "%s%s\n", p.opt.timestamp(), s.Scenario)
}

// PrintValue prints a single integer that passed the filter.
func (p *PlainPrinter) PrintValue(_ *statistics.Statistics, i int, f Format) {
	fmt.Fprintf(p.opt.writer(), "%s%s\n", p.opt.timestamp(), f.Value(i))
}

// PrintError prints error messages.
func (p *PlainPrinter) PrintError(format string, args ...any) {
	fmt.Fprintf(p.opt.writer(), format+"\n", args...)
}

// PrintStatistics prints a summary of a finished scenario.
func (p *PlainPrinter) PrintStatistics(s *statistics.Statistics) {
	w := p.opt.writer()

	fmt.Fprintf(w, "\n--- %s statistics ---\n", s.Scenario)
	fmt.Fprintf(w, "%d values visited | %d passed, %s%% pass rate\n",
		len(s.Visited),
		len(s.Passed),
		s.PassRateStr())
	fmt.Fprintf(w, "rejected values: %d\n", s.Rejected())
	fmt.Fprintf(w, "passed values:   %s\n", statistics.JoinInts(s.Passed))

	if s.ValueResults.HasResults {
		fmt.Fprintf(w, "value min/avg/max: %d/%.2f/%d\n",
			s.ValueResults.Min,
			s.ValueResults.Average,
			s.ValueResults.Max)
	}

	fmt.Fprintf(w, "--------------------------------------\n")
	fmt.Fprintf(w, "run started at: %s\n", s.StartTimeFormatted())

	if !s.EndTime.IsZero() {
		fmt.Fprintf(w, "run ended at:   %s\n", s.EndTimeFormatted())
	}

	fmt.Fprintf(w, "duration: %s\n\n", s.Duration())
}

// Done satisfies the printer interface, there is nothing to release.
func (p *PlainPrinter) Done() {}
