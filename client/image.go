package client

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

// CoverJPEGQuality matches the quality the admin form encodes covers with.
const CoverJPEGQuality = 90

// ErrUnsupportedImage is returned for input that is not a decodable jpeg, png, gif or webp image.
var ErrUnsupportedImage = errors.New("unsupported cover image")

// EncodeCoverImage re-encodes any supported image as JPEG and returns it as a data URI
// ready for CreateWebtoonRequest.CoverImage. Transparent areas are flattened onto white.
func EncodeCoverImage(r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	bounds := src.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: CoverJPEGQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
