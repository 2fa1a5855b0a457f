package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	// Register decoders for the formats article images commonly use.
	_ "image/gif"
	_ "image/png"
)

// jpegQuality is the encoding quality for normalized images.
const jpegQuality = 85

// Normalize decodes arbitrary image bytes and re-encodes them as an RGB
// JPEG, compositing any alpha channel onto a white background. Non-standard
// color modes are converted to 3-channel RGB as a side effect of drawing
// into an RGB surface. Returns the encoded bytes and the natural pixel
// dimensions.
func Normalize(data []byte) ([]byte, int, int, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := src.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, bounds, src, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, 0, 0, err
	}

	return buf.Bytes(), bounds.Dx(), bounds.Dy(), nil
}

// FitWidth scales dimensions down to fit maxWidth, preserving aspect ratio.
// Dimensions already within maxWidth are returned unchanged; images are
// never scaled up.
func FitWidth(width, height, maxWidth float64) (float64, float64) {
	if width <= maxWidth || width <= 0 {
		return width, height
	}
	ratio := maxWidth / width
	return maxWidth, height * ratio
}

// pxToMM converts pixel dimensions to millimeters at the web-standard
// 96 DPI.
func pxToMM(px int) float64 {
	return float64(px) * 25.4 / 96.0
}
