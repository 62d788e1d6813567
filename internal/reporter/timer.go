package reporter

import "time"

// Timer is a restartable stopwatch
type Timer interface {
	Start()
	Elapsed() time.Duration
}

// Stopwatch is a Timer backed by a clock function
type Stopwatch struct {
	now     func() time.Time
	started time.Time
}

// NewStopwatch creates a Stopwatch using the wall clock
func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// Start resets the stopwatch
func (s *Stopwatch) Start() {
	s.started = s.now()
}

// Elapsed returns the time since the last Start, or zero if never started
func (s *Stopwatch) Elapsed() time.Duration {
	if s.started.IsZero() {
		return 0
	}
	return s.now().Sub(s.started)
}
