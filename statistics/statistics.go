// Package statistics records what happened during a single scenario run.
package statistics

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

type Statistics struct {
	Scenario string

	// Time tracking
	StartTime time.Time
	EndTime   time.Time

	// Visited holds every integer handed to the filter, in order.
	Visited []int
	// Passed holds every integer handed to the action, in order.
	Passed []int

	ValueResults ValueResult
}

// New returns empty statistics for the named scenario.
func New(scenario string) Statistics {
	return Statistics{Scenario: scenario}
}

// Visit records an integer that was offered to the filter.
func (s *Statistics) Visit(i int) {
	s.Visited = append(s.Visited, i)
}

// Pass records an integer that went through the filter and reached the action.
func (s *Statistics) Pass(i int) {
	s.Passed = append(s.Passed, i)
}

// Rejected returns how many visited integers the filter turned down.
func (s *Statistics) Rejected() int {
	return len(s.Visited) - len(s.Passed)
}

// PassRate returns the percentage of visited integers that passed the filter.
func (s *Statistics) PassRate() float64 {
	rate := float64(len(s.Passed)) / float64(len(s.Visited)) * 100

	if math.IsNaN(rate) {
		return 0
	}

	return rate
}

func (s *Statistics) Duration() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}

	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}

	return s.EndTime.Sub(s.StartTime)
}

func (s *Statistics) StartTimeFormatted() string {
	if s.StartTime.IsZero() {
		return ""
	}
	return s.StartTime.Format(time.DateTime)
}

func (s *Statistics) EndTimeFormatted() string {
	if s.EndTime.IsZero() {
		return ""
	}
	return s.EndTime.Format(time.DateTime)
}

func (s *Statistics) PassRateStr() string {
	return fmt.Sprintf("%.2f", s.PassRate())
}

// Finalize stamps the end time and computes the value summary.
func (s *Statistics) Finalize(end time.Time) {
	s.EndTime = end
	s.ValueResults = CalcMinAvgMaxValue(s.Passed)
}

// ValueResult holds a summary of the integers that passed the filter.
type ValueResult struct {
	Min        int     // Smallest passed value.
	Max        int     // Largest passed value.
	Average    float64 // Mean of the passed values.
	HasResults bool    // Flag indicating whether any value passed.
}

// CalcMinAvgMaxValue calculates min, avg and max of the given values
func CalcMinAvgMaxValue(values []int) ValueResult {
	var result ValueResult

	if len(values) == 0 {
		return result
	}

	var sum int
	for _, v := range values {
		sum += v
	}

	result.Min = slices.Min(values)
	result.Max = slices.Max(values)
	result.Average = float64(sum) / float64(len(values))
	result.HasResults = true

	return result
}

// JoinInts renders values as a comma separated list, "none" when empty.
func JoinInts(values []int) string {
	if len(values) == 0 {
		return "none"
	}

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ", ")
}
