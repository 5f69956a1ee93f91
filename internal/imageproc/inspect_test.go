package imageproc

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, "png", DetectFormat(pngBytes(t, 1, 1)))
	assert.Equal(t, "jpeg", DetectFormat([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	assert.Equal(t, "gif", DetectFormat([]byte("GIF89a......")))
	assert.Equal(t, "svg", DetectFormat([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)))
	assert.Equal(t, "", DetectFormat([]byte("not an image")))
	assert.Equal(t, "", DetectFormat(nil))
}

func TestIsSVG(t *testing.T) {
	assert.True(t, IsSVG([]byte(`<?xml version="1.0"?><svg></svg>`)))
	assert.False(t, IsSVG([]byte("plain text")))
	assert.False(t, IsSVG(nil))
}

func TestInspectRasterDimensions(t *testing.T) {
	info := Inspect(pngBytes(t, 64, 48))
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 64, info.Width)
	assert.Equal(t, 48, info.Height)
}

func TestInspectSVGHasNoDimensions(t *testing.T) {
	info := Inspect([]byte(`<svg width="10" height="10"></svg>`))
	assert.Equal(t, "svg", info.Format)
	assert.Zero(t, info.Width)
	assert.Zero(t, info.Height)
}

func TestInspectGarbage(t *testing.T) {
	info := Inspect([]byte("garbage bytes"))
	assert.Equal(t, "", info.Format)
	assert.Zero(t, info.Width)
}

func TestInspectTruncatedPNG(t *testing.T) {
	data := pngBytes(t, 8, 8)
	info := Inspect(data[:12])
	// Header sniffs as PNG but the decode fails; dimensions stay zero.
	assert.Equal(t, "png", info.Format)
	assert.Zero(t, info.Width)
	assert.Zero(t, info.Height)
}
