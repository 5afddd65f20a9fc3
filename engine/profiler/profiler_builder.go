package profiler

import "time"

// ProfilerBuilderOption is a functional option applied to a Profiler during construction via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are logged. Non-positive values keep the default.
//
// Parameters:
//   - d: the logging interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger replaces the output function, log.Printf by default.
func WithLogger(logf func(format string, args ...any)) ProfilerBuilderOption {
	return func(p *Profiler) {
		if logf != nil {
			p.logf = logf
		}
	}
}
