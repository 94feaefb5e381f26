package printers_test

import (
	"testing"

	"github.com/pouriyajamshidi/optrun/printers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		format printers.Format
		value  int
		want   string
	}{
		{format: printers.FormatDecimal, value: 0, want: "0"},
		{format: printers.FormatDecimal, value: 9, want: "9"},
		{format: printers.FormatHex, value: 9, want: "9"},
		{format: printers.FormatHex, value: 255, want: "ff"},
		{format: printers.FormatAltHex, value: 0, want: "0x0"},
		{format: printers.FormatAltHex, value: 8, want: "0x8"},
		{format: printers.FormatAltHex, value: 31, want: "0x1f"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String()+"/"+tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.Value(tt.value))
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    printers.Format
		wantErr bool
	}{
		{input: "", want: printers.FormatDecimal},
		{input: "dec", want: printers.FormatDecimal},
		{input: "decimal", want: printers.FormatDecimal},
		{input: "hex", want: printers.FormatHex},
		{input: "althex", want: printers.FormatAltHex},
		{input: "0x", want: printers.FormatAltHex},
		{input: "octal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := printers.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatStringRoundTrip(t *testing.T) {
	for _, f := range []printers.Format{printers.FormatDecimal, printers.FormatHex, printers.FormatAltHex} {
		parsed, err := printers.ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
}
