package scene

import "github.com/Carmen-Shannon/oxy-stereo/engine/device"

// DrawerBuilderOption is a functional option applied to a drawer during construction via NewDrawer.
type DrawerBuilderOption func(*drawerImpl)

// WithDefaultProgram sets the program used by drawables that carry no program override.
//
// Parameters:
//   - p: the default program
//
// Returns:
//   - DrawerBuilderOption: a function that sets the default program
func WithDefaultProgram(p device.Program) DrawerBuilderOption {
	return func(d *drawerImpl) {
		d.defaultProgram = p
	}
}
