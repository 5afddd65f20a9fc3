package scheduler

// SchedulerBuilderOption is a functional option applied to a scheduler during construction via NewScheduler.
type SchedulerBuilderOption func(*schedulerImpl)

// WithDefaultSurfaceSize sets the surface size restored when stereo presentation ends.
//
// Parameters:
//   - width, height: the mono surface size in pixels
//
// Returns:
//   - SchedulerBuilderOption: a function that sets the default size
func WithDefaultSurfaceSize(width, height int) SchedulerBuilderOption {
	return func(s *schedulerImpl) {
		if width > 0 && height > 0 {
			s.defaultWidth, s.defaultHeight = width, height
		}
	}
}

// WithFrameHook registers fn to run after every rendered frame.
//
// Parameters:
//   - fn: receives the mode of the frame just rendered
//
// Returns:
//   - SchedulerBuilderOption: a function that sets the hook
func WithFrameHook(fn func(mode Mode)) SchedulerBuilderOption {
	return func(s *schedulerImpl) {
		s.onFrame = fn
	}
}
