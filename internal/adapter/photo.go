package adapter

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	photoOptimizeThreshold = 1 << 20
	photoMaxDimension      = 1280
	photoJPEGQuality       = 70
)

// optimizePhoto shrinks photos larger than photoOptimizeThreshold so the
// longer side fits photoMaxDimension and re-encodes them as JPEG. Small
// photos and results that do not come out smaller are returned unchanged.
func optimizePhoto(data []byte, name string) ([]byte, string, error) {
	if len(data) <= photoOptimizeThreshold {
		return data, name, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, name, fmt.Errorf("decode photo: %w", err)
	}

	bounds := src.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), photoMaxDimension)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// JPEG has no alpha channel
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: photoJPEGQuality}); err != nil {
		return data, name, fmt.Errorf("encode photo: %w", err)
	}
	if buf.Len() >= len(data) {
		return data, name, nil
	}

	return buf.Bytes(), jpegName(name), nil
}

// fitWithin scales width and height so neither exceeds limit, keeping the
// aspect ratio.
func fitWithin(width, height, limit int) (int, int) {
	switch {
	case width > height && width > limit:
		height = height * limit / width
		width = limit
	case height > limit:
		width = width * limit / height
		height = limit
	}
	return max(width, 1), max(height, 1)
}

func jpegName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "photo"
	}
	return base + ".jpg"
}
