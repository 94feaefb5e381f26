// Package printers contains the logic for printing information
package printers

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/pouriyajamshidi/optrun/option"
	"github.com/pouriyajamshidi/optrun/statistics"
)

// ColorPrinter provides functionality for printing messages with color support.
type ColorPrinter struct {
	opt options
}

type ColorPrinterOption = option.Option[ColorPrinter]

func (p *ColorPrinter) options() *options {
	return &p.opt
}

// NewColorPrinter creates a new ColorPrinter instance.
func NewColorPrinter(opts ...ColorPrinterOption) *ColorPrinter {
	p := &ColorPrinter{}
	option.Apply(p, opts...)
	return p
}

func (p *ColorPrinter) printf(c color.Color, format string, args ...any) {
	fmt.Fprint(p.opt.writer(), c.Sprintf(format, args...))
}

// PrintStart prints the scenario name in light cyan.
func (p *ColorPrinter) PrintStart(s *statistics.Statistics) {
	p.printf(color.LightCyan, "%s%s\n", p.opt.timestamp(), s.Scenario)
}

// PrintValue prints a single integer that passed the filter in light green.
func (p *ColorPrinter) PrintValue(_ *statistics.Statistics, i int, f Format) {
	p.printf(color.LightGreen, "%s%s\n", p.opt.timestamp(), f.Value(i))
}

// PrintError prints an error message in red.
func (p *ColorPrinter) PrintError(format string, args ...any) {
	p.printf(color.Red, format+"\n", args...)
}

// PrintStatistics prints a summary of a finished scenario.
// The pass rate is green when everything passed, light yellow when at least
// half passed and red otherwise.
func (p *ColorPrinter) PrintStatistics(s *statistics.Statistics) {
	p.printf(color.Yellow, "\n--- %s statistics ---\n", s.Scenario)
	p.printf(color.Yellow, "%d values visited | ", len(s.Visited))
	p.printf(color.Yellow, "%d passed, ", len(s.Passed))

	rate := s.PassRate()
	switch {
	case rate == 100:
		p.printf(color.Green, "%s%%", s.PassRateStr())
	case rate >= 50:
		p.printf(color.LightYellow, "%s%%", s.PassRateStr())
	default:
		p.printf(color.Red, "%s%%", s.PassRateStr())
	}
	p.printf(color.Yellow, " pass rate\n")

	p.printf(color.Yellow, "rejected values: ")
	p.printf(color.Red, "%d\n", s.Rejected())

	p.printf(color.Yellow, "passed values:   ")
	p.printf(color.Green, "%s\n", statistics.JoinInts(s.Passed))

	if s.ValueResults.HasResults {
		p.printf(color.Yellow, "value ")
		p.printf(color.Green, "min")
		p.printf(color.Yellow, "/")
		p.printf(color.Cyan, "avg")
		p.printf(color.Yellow, "/")
		p.printf(color.Red, "max: ")
		p.printf(color.Green, "%d", s.ValueResults.Min)
		p.printf(color.Yellow, "/")
		p.printf(color.Cyan, "%.2f", s.ValueResults.Average)
		p.printf(color.Yellow, "/")
		p.printf(color.Red, "%d\n", s.ValueResults.Max)
	}

	p.printf(color.Yellow, "--------------------------------------\n")
	p.printf(color.Yellow, "run started at: ")
	p.printf(color.FgLightBlue, "%s\n", s.StartTimeFormatted())

	if !s.EndTime.IsZero() {
		p.printf(color.Yellow, "run ended at:   ")
		p.printf(color.FgLightBlue, "%s\n", s.EndTimeFormatted())
	}

	p.printf(color.Yellow, "duration: %s\n\n", s.Duration())
}

// Done satisfies the printer interface, there is nothing to release.
func (p *ColorPrinter) Done() {}
