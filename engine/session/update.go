package session

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-stereo/engine/camera"
	"github.com/Carmen-Shannon/oxy-stereo/engine/device"
	"github.com/Carmen-Shannon/oxy-stereo/engine/scene"
)

// Update keys accepted by ParseUpdate.
const (
	KeyBuffers             = "buffers"
	KeyViewPosition        = "viewPosition"
	KeyWorldCameraPosition = "worldCameraPosition"
	KeyCameraDelta         = "cameraDelta"
)

// Position is one optional position field of an Update.
type Position struct {
	// Present is true when the update carries the field.
	Present bool

	// Null is true when the field was explicitly null. For the view position this
	// clears the eye so the mono camera is derived from the world camera.
	Null bool

	// Vector holds the target components. camera.Undefined components place no limit.
	Vector []float32
}

// At returns a Position carrying v.
func At(v ...float32) Position {
	return Position{Present: true, Vector: v}
}

// Null returns an explicitly null Position.
func Null() Position {
	return Position{Present: true, Null: true}
}

// Update is a partial change to a session's drawables and camera.
type Update struct {
	// Buffers replaces the drawable list when non-empty.
	Buffers []scene.DrawableFactory

	ViewPosition        Position
	WorldCameraPosition Position

	// CameraDelta turns the position fields into per-axis moves toward their targets.
	CameraDelta []float32
}

// IsZero reports whether the update changes nothing.
func (u Update) IsZero() bool {
	return len(u.Buffers) == 0 && !u.ViewPosition.Present && !u.WorldCameraPosition.Present
}

// ParseUpdate converts a generic key/value payload into an Update.
//
// Buffers are drawable names resolved through reg, or factories. Positions and the delta
// are arrays of numbers. A null position element leaves that axis unlimited and a null
// delta element does not move its axis. A null viewPosition clears
// the eye. Any other malformed value is logged and ignored.
//
// Parameters:
//   - payload: the decoded update
//   - reg: resolves drawable names
//
// Returns:
//   - Update: the parsed update
//   - error: an error wrapping scene.ErrUnknownDrawable for an unregistered name
func ParseUpdate(payload map[string]any, reg scene.Registry) (Update, error) {
	var u Update

	if raw, ok := payload[KeyBuffers]; ok {
		factories, err := parseBuffers(raw, reg)
		if err != nil {
			return Update{}, err
		}
		u.Buffers = factories
	}

	u.ViewPosition = parsePosition(payload, KeyViewPosition)
	u.WorldCameraPosition = parsePosition(payload, KeyWorldCameraPosition)

	if raw, ok := payload[KeyCameraDelta]; ok && raw != nil {
		if delta, ok := parseVector(raw); ok {
			u.CameraDelta = delta
		} else {
			log.Printf("session: ignoring malformed %s %v", KeyCameraDelta, raw)
		}
	}
	return u, nil
}

func parseBuffers(raw any, reg scene.Registry) ([]scene.DrawableFactory, error) {
	resolve := func(name string) (scene.DrawableFactory, error) {
		f, ok := reg[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", scene.ErrUnknownDrawable, name)
		}
		return f, nil
	}

	switch v := raw.(type) {
	case []scene.DrawableFactory:
		return v, nil
	case []string:
		out := make([]scene.DrawableFactory, 0, len(v))
		for _, name := range v {
			f, err := resolve(name)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, nil
	case []any:
		out := make([]scene.DrawableFactory, 0, len(v))
		for _, item := range v {
			switch it := item.(type) {
			case string:
				f, err := resolve(it)
				if err != nil {
					return nil, err
				}
				out = append(out, f)
			case scene.DrawableFactory:
				out = append(out, it)
			case func(device.Builder) (scene.Drawable, error):
				out = append(out, it)
			default:
				return nil, fmt.Errorf("session: %s entry %v is not a drawable", KeyBuffers, item)
			}
		}
		return out, nil
	default:
		log.Printf("session: ignoring malformed %s %v", KeyBuffers, raw)
		return nil, nil
	}
}

func parsePosition(payload map[string]any, key string) Position {
	raw, ok := payload[key]
	if !ok {
		return Position{}
	}
	if raw == nil {
		return Null()
	}
	v, ok := parseVector(raw)
	if !ok {
		log.Printf("session: ignoring malformed %s %v", key, raw)
		return Position{}
	}
	return Position{Present: true, Vector: v}
}

// parseVector accepts numeric slices and []any of numbers or nil.
func parseVector(raw any) ([]float32, bool) {
	switch v := raw.(type) {
	case []float32:
		return v, true
	case []float64:
		out := make([]float32, len(v))
		for i, f := range v {
			out[i] = float32(f)
		}
		return out, true
	case []int:
		out := make([]float32, len(v))
		for i, n := range v {
			out[i] = float32(n)
		}
		return out, true
	case []any:
		out := make([]float32, len(v))
		for i, item := range v {
			f, ok := toFloat(item)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func toFloat(v any) (float32, bool) {
	switch n := v.(type) {
	case nil:
		return camera.Undefined, true
	case float32:
		return n, true
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	case int32:
		return float32(n), true
	case int64:
		return float32(n), true
	case uint64:
		return float32(n), true
	}
	return 0, false
}
