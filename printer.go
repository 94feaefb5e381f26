package optrun

import (
	"fmt"
	"io"

	"github.com/pouriyajamshidi/optrun/printers"
	"github.com/pouriyajamshidi/optrun/statistics"
)

var (
	_ Printer = (*printers.ColorPrinter)(nil)
	_ Printer = (*printers.JSONPrinter)(nil)
	_ Printer = (*printers.CSVPrinter)(nil)
	_ Printer = (*printers.DatabasePrinter)(nil)
	_ Printer = (*printers.PlainPrinter)(nil)
)

// Printer defines a set of methods that any printer implementation must provide.
// Printers are responsible for outputting information, but should not modify data or perform calculations.
type Printer interface {
	// PrintStart is called once at the beginning of every scenario.
	PrintStart(s *statistics.Statistics)

	// PrintValue is called for every integer that passed the filter,
	// f tells how the integer should be rendered.
	PrintValue(s *statistics.Statistics, i int, f printers.Format)

	// PrintStatistics should print a summary of a finished scenario.
	PrintStatistics(s *statistics.Statistics)

	// PrintError should print an error message.
	// Printer should also apply \n to the given string, if needed.
	PrintError(format string, args ...any)

	// Done releases whatever the printer holds (files, connections).
	Done()
}

// PrinterConfig holds all configuration options for Printer creation
type PrinterConfig struct {
	OutputJSON    bool
	PrettyJSON    bool
	NoColor       bool
	WithTimestamp bool
	OutputDBPath  string
	OutputCSVPath string

	// Out overrides stdout for the printers writing to the terminal.
	Out io.Writer
}

// NewPrinter creates and returns an appropriate printer based on configuration
func NewPrinter(cfg PrinterConfig) (Printer, error) {
	if cfg.PrettyJSON && !cfg.OutputJSON {
		return nil, fmt.Errorf("--pretty has no effect without the -j flag")
	}

	switch {
	case cfg.OutputJSON:
		opts := []printers.JSONPrinterOption{}
		if cfg.PrettyJSON {
			opts = append(opts, printers.WithPrettyJSON())
		}
		if cfg.WithTimestamp {
			opts = append(opts, printers.WithTimestamp[*printers.JSONPrinter]())
		}
		if cfg.Out != nil {
			opts = append(opts, printers.WithWriter[*printers.JSONPrinter](cfg.Out))
		}
		return printers.NewJSONPrinter(opts...), nil

	case cfg.OutputDBPath != "":
		opts := []printers.DatabasePrinterOption{}
		if cfg.Out != nil {
			opts = append(opts, printers.WithWriter[*printers.DatabasePrinter](cfg.Out))
		}
		return printers.NewDatabasePrinter(cfg.OutputDBPath, opts...)

	case cfg.OutputCSVPath != "":
		opts := []printers.CSVPrinterOption{}
		if cfg.WithTimestamp {
			opts = append(opts, printers.WithTimestamp[*printers.CSVPrinter]())
		}
		if cfg.Out != nil {
			opts = append(opts, printers.WithWriter[*printers.CSVPrinter](cfg.Out))
		}
		return printers.NewCSVPrinter(cfg.OutputCSVPath, opts...)

	case cfg.NoColor:
		opts := []printers.PlainPrinterOption{}
		if cfg.WithTimestamp {
			opts = append(opts, printers.WithTimestamp[*printers.PlainPrinter]())
		}
		if cfg.Out != nil {
			opts = append(opts, printers.WithWriter[*printers.PlainPrinter](cfg.Out))
		}
		return printers.NewPlainPrinter(opts...), nil

	default:
		opts := []printers.ColorPrinterOption{}
		if cfg.WithTimestamp {
			opts = append(opts, printers.WithTimestamp[*printers.ColorPrinter]())
		}
		if cfg.Out != nil {
			opts = append(opts, printers.WithWriter[*printers.ColorPrinter](cfg.Out))
		}
		return printers.NewColorPrinter(opts...), nil
	}
}
