package ai

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg" // Register JPEG decoder

	"github.com/disintegration/imaging"
)

const (
	// Thumbnail settings for list views
	thumbnailSize = 256 // px, square banners
)

// ImageProcessor downsizes generated banners.
type ImageProcessor struct {
	size int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{size: thumbnailSize}
}

// Thumbnail fits the banner into a size x size box and re-encodes it as PNG.
// Images already small enough are returned unchanged.
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= p.size && bounds.Dy() <= p.size {
		return data, nil
	}

	thumb := imaging.Fit(img, p.size, p.size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
