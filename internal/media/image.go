// Package media normalizes uploaded images: decode, shrink, re-encode as WebP.
package media

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

const (
	MaxSide     = 512
	WebPQuality = 80
	ContentType = "image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// ToWebP decodes r, scales it so the longer side is at most maxSide and
// returns the WebP encoding. Smaller images keep their size.
func ToWebP(r io.Reader, maxSide int) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	img := Fit(src, maxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fit returns src scaled down to fit a maxSide square, preserving aspect ratio.
func Fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}

	nw, nh := maxSide, maxSide
	if w >= h {
		nh = h * maxSide / w
	} else {
		nw = w * maxSide / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
