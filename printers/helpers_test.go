package printers_test

import (
	"time"

	"github.com/pouriyajamshidi/optrun/statistics"
)

// createTestStats returns the statistics of a finished "odd" scenario.
func createTestStats() *statistics.Statistics {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	s := statistics.New("odd")
	s.StartTime = start
	for i := 0; i < 10; i++ {
		s.Visit(i)
		if i%2 == 1 {
			s.Pass(i)
		}
	}
	s.Finalize(start.Add(time.Second))

	return &s
}
