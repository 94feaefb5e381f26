package printers

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pouriyajamshidi/optrun/option"
	"github.com/pouriyajamshidi/optrun/statistics"
)

const (
	colTimestamp string = "Timestamp"
	colScenario  string = "Scenario"
	colValue     string = "Value"
	colFormatted string = "Formatted"
	colFormat    string = "Format"
	colMetric    string = "Metric"
)

const (
	filePermission os.FileMode = 0644
	fileFlag       int         = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
)

// CSVPrinter is responsible for writing values and statistics to CSV files.
type CSVPrinter struct {
	ValueWriter *csv.Writer
	StatsWriter *csv.Writer
	ValueFile   *os.File
	StatsFile   *os.File
	opt         options
}

type CSVPrinterOption = option.Option[CSVPrinter]

func (p *CSVPrinter) options() *options {
	return &p.opt
}

// NewCSVPrinter creates the values file and its `_stats` companion and writes their headers.
func NewCSVPrinter(filePath string, opts ...CSVPrinterOption) (*CSVPrinter, error) {
	valueFilename := addCSVExtension(filePath, false)

	valueFile, err := os.OpenFile(valueFilename, fileFlag, filePermission)
	if err != nil {
		return nil, fmt.Errorf("create values CSV file %s: %w", valueFilename, err)
	}

	statsFilename := addCSVExtension(filePath, true)

	statsFile, err := os.OpenFile(statsFilename, fileFlag, filePermission)
	if err != nil {
		valueFile.Close()
		return nil, fmt.Errorf("create stats CSV file %s: %w", statsFilename, err)
	}

	p := &CSVPrinter{
		ValueWriter: csv.NewWriter(valueFile),
		StatsWriter: csv.NewWriter(statsFile),
		ValueFile:   valueFile,
		StatsFile:   statsFile,
	}

	option.Apply(p, opts...)

	if err := p.writeValueHeader(); err != nil {
		p.Done()
		return nil, err
	}

	if err := p.writeStatsHeader(); err != nil {
		p.Done()
		return nil, err
	}

	return p, nil
}

func addCSVExtension(filename string, withStatsExt bool) string {
	if withStatsExt {
		// Remove .csv extension if present, then add _stats.csv
		base := strings.TrimSuffix(filename, ".csv")
		return base + "_stats.csv"
	}

	if strings.HasSuffix(filename, ".csv") {
		return filename
	}

	return filename + ".csv"
}

func (p *CSVPrinter) writeValueHeader() error {
	headers := []string{}

	if p.opt.ShowTimestamp {
		headers = append(headers, colTimestamp)
	}

	headers = append(headers, colScenario, colValue, colFormatted, colFormat)

	if err := p.ValueWriter.Write(headers); err != nil {
		return fmt.Errorf("write value headers: %w", err)
	}

	p.ValueWriter.Flush()

	return p.ValueWriter.Error()
}

func (p *CSVPrinter) writeStatsHeader() error {
	headers := []string{colScenario, colMetric, colValue}

	if err := p.StatsWriter.Write(headers); err != nil {
		return fmt.Errorf("write statistics headers: %w", err)
	}

	p.StatsWriter.Flush()

	return p.StatsWriter.Error()
}

// Done flushes the buffer of writers and closes the value and stats file
func (p *CSVPrinter) Done() {
	if p.ValueWriter != nil {
		p.ValueWriter.Flush()
	}

	if p.ValueFile != nil {
		p.ValueFile.Close()
	}

	if p.StatsWriter != nil {
		p.StatsWriter.Flush()
	}

	if p.StatsFile != nil {
		p.StatsFile.Close()
	}
}

// PrintStart tells the user where the results of the scenario go.
func (p *CSVPrinter) PrintStart(s *statistics.Statistics) {
	fmt.Fprintf(p.opt.writer(), "%s - saving the results to: %s\n", s.Scenario, p.ValueFile.Name())
}

// PrintValue writes one record per value that passed the filter.
func (p *CSVPrinter) PrintValue(s *statistics.Statistics, i int, f Format) {
	record := []string{}

	if p.opt.ShowTimestamp {
		record = append(record, time.Now().Format(time.DateTime))
	}

	record = append(record, s.Scenario, strconv.Itoa(i), f.Value(i), f.String())

	if err := p.ValueWriter.Write(record); err != nil {
		p.PrintError("Failed to write value record: %v", err)
	}

	p.ValueWriter.Flush()
}

// PrintError logs an error message to stderr.
func (p *CSVPrinter) PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "CSV Error: "+format+"\n", args...)
}

// PrintStatistics writes the scenario summary to the stats file as metric/value rows.
func (p *CSVPrinter) PrintStatistics(s *statistics.Statistics) {
	stats := [][]string{
		{"Visited", strconv.Itoa(len(s.Visited))},
		{"Passed", strconv.Itoa(len(s.Passed))},
		{"Rejected", strconv.Itoa(s.Rejected())},
		{"Pass Rate Percentage", s.PassRateStr()},
		{"Passed Values", statistics.JoinInts(s.Passed)},
	}

	if s.ValueResults.HasResults {
		stats = append(stats, []string{"Value Min", strconv.Itoa(s.ValueResults.Min)})
		stats = append(stats, []string{"Value Avg", fmt.Sprintf("%.2f", s.ValueResults.Average)})
		stats = append(stats, []string{"Value Max", strconv.Itoa(s.ValueResults.Max)})
	} else {
		stats = append(stats, []string{"Value Min", "N/A"})
		stats = append(stats, []string{"Value Avg", "N/A"})
		stats = append(stats, []string{"Value Max", "N/A"})
	}

	stats = append(stats, []string{"Start Timestamp", s.StartTimeFormatted()})

	if !s.EndTime.IsZero() {
		stats = append(stats, []string{"End Timestamp", s.EndTimeFormatted()})
	} else {
		stats = append(stats, []string{"End Timestamp", "In progress"})
	}

	for _, record := range stats {
		if err := p.StatsWriter.Write(append([]string{s.Scenario}, record...)); err != nil {
			p.PrintError("Failed to write statistics record: %v", err)
			return
		}
	}

	p.StatsWriter.Flush()

	fmt.Fprintf(p.opt.writer(), "Statistics have been saved to: %s\n", p.StatsFile.Name())
}
