package stereo

// SimulatedDisplayBuilderOption is a functional option applied to a simulated display
// during construction via NewSimulatedDisplay.
type SimulatedDisplayBuilderOption func(*SimulatedDisplay)

// WithDisplayName sets the name reported by the display.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - SimulatedDisplayBuilderOption: a function that sets the name
func WithDisplayName(name string) SimulatedDisplayBuilderOption {
	return func(d *SimulatedDisplay) {
		if name != "" {
			d.name = name
		}
	}
}

// WithEyeResolution sets the render size of each eye. Non-positive values are ignored.
//
// Parameters:
//   - width: eye render width in pixels
//   - height: eye render height in pixels
//
// Returns:
//   - SimulatedDisplayBuilderOption: a function that sets the eye resolution
func WithEyeResolution(width, height int) SimulatedDisplayBuilderOption {
	return func(d *SimulatedDisplay) {
		if width > 0 && height > 0 {
			d.eyeWidth, d.eyeHeight = width, height
		}
	}
}

// WithIPD sets the interpupillary distance in meters.
func WithIPD(ipd float32) SimulatedDisplayBuilderOption {
	return func(d *SimulatedDisplay) {
		if ipd >= 0 {
			d.ipd = ipd
		}
	}
}

// WithEyeFov sets the vertical field of view of each eye in degrees.
func WithEyeFov(degrees float32) SimulatedDisplayBuilderOption {
	return func(d *SimulatedDisplay) {
		if degrees > 0 && degrees < 180 {
			d.fovY = degrees
		}
	}
}
