package printers

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Format selects how an integer is rendered by a printer.
type Format int

const (
	FormatDecimal Format = iota // 9
	FormatHex                   // f
	FormatAltHex                // 0xf
)

// ParseFormat converts a user supplied format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "dec", "decimal":
		return FormatDecimal, nil
	case "hex":
		return FormatHex, nil
	case "althex", "0x":
		return FormatAltHex, nil
	}

	return FormatDecimal, fmt.Errorf("unknown format %q, expected one of dec, hex, althex", s)
}

// Value renders i according to the format.
func (f Format) Value(i int) string {
	switch f {
	case FormatHex:
		return fmt.Sprintf("%x", i)
	case FormatAltHex:
		return fmt.Sprintf("%#x", i)
	default:
		return strconv.Itoa(i)
	}
}

func (f Format) String() string {
	switch f {
	case FormatHex:
		return "hex"
	case FormatAltHex:
		return "althex"
	default:
		return "dec"
	}
}

// options contains common display options shared by all printers
type options struct {
	ShowTimestamp bool
	Out           io.Writer
}

func (o *options) writer() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// timestamp returns the prefix used in front of every line, or an empty string.
func (o *options) timestamp() string {
	if !o.ShowTimestamp {
		return ""
	}
	return time.Now().Format(time.DateTime) + " "
}

type hasOptions interface {
	options() *options
}

// WithTimestamp enables timestamp display in printer output
func WithTimestamp[T hasOptions]() func(T) {
	return func(p T) {
		p.options().ShowTimestamp = true
	}
}

// WithWriter redirects printer output, which goes to stdout by default
func WithWriter[T hasOptions](w io.Writer) func(T) {
	return func(p T) {
		p.options().Out = w
	}
}
