package imageutil

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// Instructor photos are normalized to a bounded square-ish JPEG before upload
// so the catalog stays light regardless of what clients send.

const (
	maxDimension = 1024
	jpegQuality  = 85
)

// NormalizePhoto decodes an uploaded image, downscales it to fit within
// maxDimension on the longest side (never upscales) and re-encodes as JPEG.
func NormalizePhoto(r io.Reader) (io.Reader, string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}

	return &buf, "image/jpeg", nil
}
