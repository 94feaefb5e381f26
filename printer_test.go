package optrun_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/pouriyajamshidi/optrun"
	"github.com/pouriyajamshidi/optrun/printers"
)

func TestNewPrinter(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		cfg     optrun.PrinterConfig
		check   func(p optrun.Printer) bool
		wantErr bool
	}{
		{
			name:  "color by default",
			cfg:   optrun.PrinterConfig{},
			check: func(p optrun.Printer) bool { _, ok := p.(*printers.ColorPrinter); return ok },
		},
		{
			name:  "plain when color is disabled",
			cfg:   optrun.PrinterConfig{NoColor: true, WithTimestamp: true},
			check: func(p optrun.Printer) bool { _, ok := p.(*printers.PlainPrinter); return ok },
		},
		{
			name:  "json wins over everything else",
			cfg:   optrun.PrinterConfig{OutputJSON: true, PrettyJSON: true, NoColor: true},
			check: func(p optrun.Printer) bool { _, ok := p.(*printers.JSONPrinter); return ok },
		},
		{
			name:  "csv",
			cfg:   optrun.PrinterConfig{OutputCSVPath: filepath.Join(tempDir, "out")},
			check: func(p optrun.Printer) bool { _, ok := p.(*printers.CSVPrinter); return ok },
		},
		{
			name: "database wins over csv",
			cfg: optrun.PrinterConfig{
				OutputDBPath:  filepath.Join(tempDir, "out"),
				OutputCSVPath: filepath.Join(tempDir, "other"),
			},
			check: func(p optrun.Printer) bool { _, ok := p.(*printers.DatabasePrinter); return ok },
		},
		{
			name:    "pretty without json",
			cfg:     optrun.PrinterConfig{PrettyJSON: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Out = &bytes.Buffer{}

			p, err := optrun.NewPrinter(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewPrinter() expected an error")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewPrinter() error = %v", err)
			}
			defer p.Done()

			if !tt.check(p) {
				t.Errorf("NewPrinter() returned %T", p)
			}
		})
	}
}
