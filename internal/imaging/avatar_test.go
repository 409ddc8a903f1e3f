package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-pos/internal/httperr"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 120, A: 255})
		}
	}
	return img
}

func TestFit(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 256, 128), Fit(solid(1024, 512), 256).Bounds())
	assert.Equal(t, image.Rect(0, 0, 64, 256), Fit(solid(200, 800), 256).Bounds())
	assert.Equal(t, image.Rect(0, 0, 10, 10), Fit(solid(10, 10), 256).Bounds())
}

func TestAvatar_PNGToWebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(600, 300)))

	out, err := Avatar(buf.Bytes())
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestAvatar_RejectsGarbage(t *testing.T) {
	_, err := Avatar([]byte("not an image"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}
