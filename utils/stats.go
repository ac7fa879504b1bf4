package utils

import "time"

// Stats tracks throughput for one simulation run.
type Stats struct {
	StartTime time.Time
	Frames    int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Frame records one rendered frame.
func (s *Stats) Frame() {
	s.Frames++
}

// FPS returns the average frames per second since the run started.
func (s *Stats) FPS() float64 {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / elapsed
}
