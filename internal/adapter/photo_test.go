package adapter

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisyPNG returns a PNG that does not compress below photoOptimizeThreshold.
func noisyPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	rnd := rand.New(rand.NewPCG(1, 2))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, color.RGBA{R: uint8(rnd.UintN(256)), G: uint8(rnd.UintN(256)), B: uint8(rnd.UintN(256)), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.Greater(t, buf.Len(), photoOptimizeThreshold)
	return buf.Bytes()
}

func TestOptimizePhoto_SmallPhotoUntouched(t *testing.T) {
	data := []byte("tiny jpeg")

	got, name, err := optimizePhoto(data, "pic.jpg")
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, "pic.jpg", name)
}

func TestOptimizePhoto_LargePhotoDownscaled(t *testing.T) {
	data := noisyPNG(t, 1600, 1200)

	got, name, err := optimizePhoto(data, "holiday/Big.PNG")
	require.NoError(t, err)
	assert.Equal(t, "Big.jpg", name)
	assert.Less(t, len(got), len(data))

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(got))
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 960, cfg.Height)
}

func TestOptimizePhoto_UndecodableKeepsOriginal(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, photoOptimizeThreshold+1)

	got, name, err := optimizePhoto(data, "broken.jpg")
	assert.Error(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, "broken.jpg", name)
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{2000, 1500, 1280, 960},
		{1500, 2000, 960, 1280},
		{800, 600, 800, 600},
		{1280, 1280, 1280, 1280},
		{3000, 3000, 1280, 1280},
		{5000, 2, 1280, 1},
	}

	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, photoMaxDimension)
		assert.Equal(t, tt.wantW, w, "width for %dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, h, "height for %dx%d", tt.w, tt.h)
	}
}

func TestJPEGName(t *testing.T) {
	assert.Equal(t, "pic.jpg", jpegName("dir/pic.PNG"))
	assert.Equal(t, "x.jpg", jpegName("x"))
	assert.Equal(t, "photo.jpg", jpegName(""))
}
