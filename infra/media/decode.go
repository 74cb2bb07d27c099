package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Decode decodes jpeg, png, gif or webp bytes.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// Thumbnail scales img to exactly w×h pixels. Sizes below 1 are raised to 1.
func Thumbnail(img image.Image, w, h int) image.Image {
	w, h = max(w, 1), max(h, 1)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// FitCells returns the largest w×h cell grid within maxW×maxH that keeps the
// image aspect ratio, given that one cell is twice as tall as it is wide.
func FitCells(img image.Image, maxW, maxH int) (int, int) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	w := maxW
	h := w * b.Dy() / b.Dx() / 2
	if h > maxH {
		h = maxH
		w = h * 2 * b.Dx() / b.Dy()
	}
	return max(w, 1), max(h, 1)
}
