package printers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pouriyajamshidi/optrun/option"
	"github.com/pouriyajamshidi/optrun/statistics"
)

// JSONEventType is a special type for each method
// in the printer interface so that automatic tools
// can understand what kind of an event they've received.
type JSONEventType string

const (
	startEvent      JSONEventType = "start"      // Event type for `PrintStart` method.
	valueEvent      JSONEventType = "value"      // Event type for `PrintValue` method.
	statisticsEvent JSONEventType = "statistics" // Event type for `PrintStatistics` method.
	errorEvent      JSONEventType = "error"      // Event type for `PrintError` method.
)

// JSONData contains all possible fields for JSON output.
// Because one event usually contains only a subset of fields,
// other fields will be omitted in the output.
type JSONData struct {
	Type      JSONEventType `json:"type"` // Specifies type of a message/event.
	Timestamp string        `json:"timestamp,omitempty"`
	Message   string        `json:"message"` // Message contains a message similar to other plain and colored printers.
	Scenario  string        `json:"scenario,omitempty"`
	// Value is a pointer on purpose, otherwise a zero value would be omitted.
	Value     *int   `json:"value,omitempty"`
	Formatted string `json:"formatted,omitempty"`
	Format    string `json:"format,omitempty"`

	Visited        []int   `json:"visited,omitempty"`
	Passed         []int   `json:"passed,omitempty"`
	// Counts are pointers so that zero is still emitted.
	TotalVisited   *int    `json:"totalVisited,omitempty"`
	TotalPassed    *int    `json:"totalPassed,omitempty"`
	TotalRejected  *int    `json:"totalRejected,omitempty"`
	PassRate       string  `json:"passRate,omitempty"`
	ValueMin       *int    `json:"valueMin,omitempty"`
	ValueAvg       string  `json:"valueAvg,omitempty"`
	ValueMax       *int    `json:"valueMax,omitempty"`
	StartTimestamp string  `json:"startTimestamp,omitempty"`
	EndTimestamp   string  `json:"endTimestamp,omitempty"`
	TotalDuration  float64 `json:"totalDuration,omitempty"` // TotalDuration in seconds.
}

// JSONPrinter is a struct that holds a JSON encoder to print structured JSON output.
type JSONPrinter struct {
	encoder *json.Encoder
	opt     options
	pretty  bool
}

type JSONPrinterOption = option.Option[JSONPrinter]

func (p *JSONPrinter) options() *options {
	return &p.opt
}

// WithPrettyJSON indents every emitted object.
func WithPrettyJSON() JSONPrinterOption {
	return func(p *JSONPrinter) {
		p.pretty = true
	}
}

// NewJSONPrinter creates a new JSONPrinter instance.
func NewJSONPrinter(opts ...JSONPrinterOption) *JSONPrinter {
	p := &JSONPrinter{}
	option.Apply(p, opts...)

	p.encoder = json.NewEncoder(p.opt.writer())
	if p.pretty {
		p.encoder.SetIndent("", "\t")
	}

	return p
}

func (p *JSONPrinter) timestamp() string {
	if !p.opt.ShowTimestamp {
		return ""
	}
	return time.Now().Format(time.DateTime)
}

// PrintStart prints the initial message of a scenario.
func (p *JSONPrinter) PrintStart(s *statistics.Statistics) {
	p.encoder.Encode(JSONData{
		Type:      startEvent,
		Timestamp: p.timestamp(),
		Message:   fmt.Sprintf("running scenario %s", s.Scenario),
		Scenario:  s.Scenario,
	})
}

// PrintValue prints a value that passed the filter.
func (p *JSONPrinter) PrintValue(s *statistics.Statistics, i int, f Format) {
	formatted := f.Value(i)

	p.encoder.Encode(JSONData{
		Type:      valueEvent,
		Timestamp: p.timestamp(),
		Message:   formatted,
		Scenario:  s.Scenario,
		Value:     &i,
		Formatted: formatted,
		Format:    f.String(),
	})
}

// PrintStatistics prints the summary of a scenario as a single JSON object.
func (p *JSONPrinter) PrintStatistics(s *statistics.Statistics) {
	visited, passed, rejected := len(s.Visited), len(s.Passed), s.Rejected()

	data := JSONData{
		Type:           statisticsEvent,
		Timestamp:      p.timestamp(),
		Message:        fmt.Sprintf("statistics for scenario %s", s.Scenario),
		Scenario:       s.Scenario,
		Visited:        s.Visited,
		Passed:         s.Passed,
		TotalVisited:   &visited,
		TotalPassed:    &passed,
		TotalRejected:  &rejected,
		PassRate:       s.PassRateStr(),
		StartTimestamp: s.StartTimeFormatted(),
		EndTimestamp:   s.EndTimeFormatted(),
		TotalDuration:  s.Duration().Seconds(),
	}

	if s.ValueResults.HasResults {
		vMin, vMax := s.ValueResults.Min, s.ValueResults.Max
		data.ValueMin = &vMin
		data.ValueMax = &vMax
		data.ValueAvg = fmt.Sprintf("%.2f", s.ValueResults.Average)
	}

	p.encoder.Encode(data)
}

// PrintError prints an error event.
func (p *JSONPrinter) PrintError(format string, args ...any) {
	p.encoder.Encode(JSONData{
		Type:      errorEvent,
		Timestamp: p.timestamp(),
		Message:   fmt.Sprintf(format, args...),
	})
}

// Done satisfies the printer interface, there is nothing to release.
func (p *JSONPrinter) Done() {}
