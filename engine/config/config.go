// Package config loads the renderer's YAML configuration and the YAML update documents
// that move the camera or swap the scene while it runs.
package config

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-stereo/common"
	"github.com/Carmen-Shannon/oxy-stereo/engine/camera"
	"github.com/Carmen-Shannon/oxy-stereo/engine/scene"
	"github.com/Carmen-Shannon/oxy-stereo/engine/session"
	"github.com/Carmen-Shannon/oxy-stereo/engine/stereo"
	"gopkg.in/yaml.v3"
)

// Stereo provider names.
const (
	ProviderNone      = "none"
	ProviderSimulated = "simulated"
)

// Config is the top-level session configuration loaded from YAML. Zero fields take
// the values of Default.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Projection ProjectionConfig `yaml:"projection"`
	Camera     CameraConfig     `yaml:"camera"`
	Stereo     StereoConfig     `yaml:"stereo"`
	Scene      SceneConfig      `yaml:"scene"`
	Updates    UpdatesConfig    `yaml:"updates"`
	Profiling  bool             `yaml:"profiling"`
}

// WindowConfig sizes and titles the host window. VSync is a pointer so an explicit
// false survives defaulting.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  *bool  `yaml:"vsync"`
}

// ProjectionConfig is the mono perspective projection.
type ProjectionConfig struct {
	FovDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// CameraConfig sets the initial camera state.
type CameraConfig struct {
	// ViewPosition is the initial eye. Empty keeps (0, 0, -5).
	ViewPosition []float32 `yaml:"view_position"`

	// DeriveView starts without an eye so it follows the world camera.
	DeriveView bool `yaml:"derive_view"`

	// WorldCameraPosition is the initial scene-reference point. Empty keeps (0, 0, -2.5).
	WorldCameraPosition []float32 `yaml:"world_camera_position"`
}

// StereoConfig selects the stereo provider and the simulated display's eye parameters.
type StereoConfig struct {
	Provider   string  `yaml:"provider"`
	Name       string  `yaml:"name"`
	EyeWidth   int     `yaml:"eye_width"`
	EyeHeight  int     `yaml:"eye_height"`
	IPD        float32 `yaml:"ipd"`
	FovDegrees float32 `yaml:"fov_degrees"`
}

// SceneConfig lists the built-in drawables the session starts with.
type SceneConfig struct {
	Drawables []string `yaml:"drawables"`
}

// UpdatesConfig configures the update feed.
type UpdatesConfig struct {
	// File is watched for update documents; empty disables the feed.
	File      string `yaml:"file"`
	QueueSize int    `yaml:"queue_size"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Load reads and decodes the YAML file at path and fills unset fields with defaults.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML configuration and fills unset fields with defaults.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	c.Window.Title = common.Coalesce(c.Window.Title, "oxy-stereo")
	c.Window.Width = common.Coalesce(c.Window.Width, 640)
	c.Window.Height = common.Coalesce(c.Window.Height, 480)
	if c.Window.VSync == nil {
		on := true
		c.Window.VSync = &on
	}

	c.Projection.FovDegrees = common.Coalesce(c.Projection.FovDegrees, 45)
	c.Projection.Near = common.Coalesce(c.Projection.Near, 1)
	c.Projection.Far = common.Coalesce(c.Projection.Far, 2000)

	c.Stereo.Provider = common.Coalesce(c.Stereo.Provider, ProviderNone)
	c.Stereo.EyeWidth = common.Coalesce(c.Stereo.EyeWidth, 960)
	c.Stereo.EyeHeight = common.Coalesce(c.Stereo.EyeHeight, 1080)
	c.Stereo.IPD = common.Coalesce(c.Stereo.IPD, 0.064)
	c.Stereo.FovDegrees = common.Coalesce(c.Stereo.FovDegrees, 90)

	if len(c.Scene.Drawables) == 0 {
		c.Scene.Drawables = append([]string(nil), scene.DefaultDrawables...)
	}
	c.Updates.QueueSize = common.Coalesce(c.Updates.QueueSize, 64)
}

// Validate reports configuration values that cannot be used.
func (c Config) Validate() error {
	switch c.Stereo.Provider {
	case ProviderNone, ProviderSimulated:
	default:
		return fmt.Errorf("config: unknown stereo provider %q", c.Stereo.Provider)
	}
	if c.Projection.Far <= c.Projection.Near {
		return fmt.Errorf("config: projection far (%g) must exceed near (%g)", c.Projection.Far, c.Projection.Near)
	}
	reg := scene.DefaultRegistry()
	for _, name := range c.Scene.Drawables {
		if _, ok := reg[name]; !ok {
			return fmt.Errorf("config: %w: %q", scene.ErrUnknownDrawable, name)
		}
	}
	for name, v := range map[string][]float32{
		"camera.view_position":         c.Camera.ViewPosition,
		"camera.world_camera_position": c.Camera.WorldCameraPosition,
	} {
		if len(v) != 0 && len(v) != 3 {
			return fmt.Errorf("config: %s needs 3 components, got %d", name, len(v))
		}
	}
	return nil
}

// CameraState builds the initial camera state.
func (c Config) CameraState() *camera.State {
	var options []camera.StateBuilderOption
	if len(c.Camera.ViewPosition) == 3 {
		v := c.Camera.ViewPosition
		options = append(options, camera.WithViewPosition(v[0], v[1], v[2]))
	}
	if c.Camera.DeriveView {
		options = append(options, camera.WithDerivedViewPosition())
	}
	if len(c.Camera.WorldCameraPosition) == 3 {
		v := c.Camera.WorldCameraPosition
		options = append(options, camera.WithWorldCameraPosition(v[0], v[1], v[2]))
	}
	return camera.NewState(options...)
}

// SessionOptions translates the configuration into session options.
func (c Config) SessionOptions() []session.SessionBuilderOption {
	return []session.SessionBuilderOption{
		session.WithCamera(c.CameraState()),
		session.WithScene(scene.DefaultRegistry(), c.Scene.Drawables),
		session.WithProjection(c.Projection.FovDegrees, c.Projection.Near, c.Projection.Far),
		session.WithQueueSize(c.Updates.QueueSize),
	}
}

// StereoProvider returns the configured provider. A simulated display is driven by frames.
//
// Parameters:
//   - frames: the host frame source
//
// Returns:
//   - stereo.Provider: the provider
func (c Config) StereoProvider(frames stereo.FrameSource) stereo.Provider {
	if c.Stereo.Provider != ProviderSimulated {
		return stereo.NullProvider{}
	}
	return stereo.NewSimulatedProvider(stereo.NewSimulatedDisplay(frames,
		stereo.WithDisplayName(c.Stereo.Name),
		stereo.WithEyeResolution(c.Stereo.EyeWidth, c.Stereo.EyeHeight),
		stereo.WithIPD(c.Stereo.IPD),
		stereo.WithEyeFov(c.Stereo.FovDegrees),
	))
}
