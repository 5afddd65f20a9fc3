package config

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-stereo/engine/scene"
	"github.com/Carmen-Shannon/oxy-stereo/engine/session"
	"gopkg.in/yaml.v3"
)

// ParseUpdate decodes a YAML update document such as
//
//	viewPosition: [0, 0, -2]
//	cameraDelta: [0, 0, 0.05]
//	buffers: [cube]
//
// Parameters:
//   - data: the YAML document
//   - reg: resolves drawable names
//
// Returns:
//   - session.Update: the parsed update
//   - error: error if the document is not a YAML mapping or names an unknown drawable
func ParseUpdate(data []byte, reg scene.Registry) (session.Update, error) {
	var payload map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return session.Update{}, fmt.Errorf("config: unmarshal update: %w", err)
	}
	u, err := session.ParseUpdate(payload, reg)
	if err != nil {
		return session.Update{}, fmt.Errorf("config: update: %w", err)
	}
	return u, nil
}

// LoadUpdate reads and decodes the update document at path.
func LoadUpdate(path string, reg scene.Registry) (session.Update, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return session.Update{}, fmt.Errorf("config: load update %s: %w", path, err)
	}
	return ParseUpdate(data, reg)
}
