package common

// Virtual key codes for the keys the renderer reacts to.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyV   = 86  // V key (ASCII), toggles stereo presentation
	KeyEsc = 256 // Escape key (GLFW), leaves stereo or closes the window
)
