package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// PixelsToScreen converts a framebuffer size in pixels into window screen coordinates,
// using the current window and framebuffer sizes as the scale. The size is returned
// unchanged while either current size is unknown.
//
// Parameters:
//   - width, height: the requested size in pixels
//   - winWidth, winHeight: the current window size in screen coordinates
//   - fbWidth, fbHeight: the current framebuffer size in pixels
//
// Returns:
//   - int: width in screen coordinates
//   - int: height in screen coordinates
func PixelsToScreen(width, height, winWidth, winHeight, fbWidth, fbHeight int) (int, int) {
	if winWidth <= 0 || winHeight <= 0 || fbWidth <= 0 || fbHeight <= 0 {
		return width, height
	}
	return width * winWidth / fbWidth, height * winHeight / fbHeight
}
