package rest

import (
	"bytes"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
)

const (
	placeholderWidth  = 640
	placeholderHeight = 360
)

var (
	placeholderOnce sync.Once
	placeholderPNG  []byte
	placeholderErr  error
)

// placeholderBanner renders the neutral 16:9 image shown when a play has no
// banner. It is built once per process.
func placeholderBanner() ([]byte, error) {
	placeholderOnce.Do(func() {
		field := imaging.New(placeholderWidth, placeholderHeight, color.NRGBA{R: 0x1b, G: 0x3a, B: 0x2b, A: 0xff})
		diamond := imaging.New(placeholderHeight/3, placeholderHeight/3, color.NRGBA{R: 0xc8, G: 0x9b, B: 0x6b, A: 0xff})
		diamond = imaging.Rotate(diamond, 45, color.Transparent)
		img := imaging.OverlayCenter(field, diamond, 1.0)

		var buf bytes.Buffer
		if placeholderErr = imaging.Encode(&buf, img, imaging.PNG); placeholderErr == nil {
			placeholderPNG = buf.Bytes()
		}
	})
	return placeholderPNG, placeholderErr
}
