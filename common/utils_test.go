package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 640, Coalesce(0, 640, 800))
	assert.Equal(t, "", Coalesce("", ""))
}

func TestPixelsToScreen(t *testing.T) {
	tests := []struct {
		name                 string
		width, height        int
		winW, winH, fbW, fbH int
		wantW, wantH         int
	}{
		{"same scale", 1920, 1080, 640, 480, 640, 480, 1920, 1080},
		{"hidpi", 640, 480, 640, 480, 1280, 960, 320, 240},
		{"hidpi stereo", 1920, 1080, 320, 240, 640, 480, 960, 540},
		{"minimized", 640, 480, 0, 0, 0, 0, 640, 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := PixelsToScreen(tt.width, tt.height, tt.winW, tt.winH, tt.fbW, tt.fbH)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
