// Package imaging validates and normalizes uploaded meal photos before they
// are sent to the vision model: format and dimension policy checks, then a
// bounded resize and JPEG recompression to keep upload payloads small.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MinDimension is the smallest usable width/height in pixels.
	MinDimension = 100
	// MaxUploadBytes is the largest accepted raw upload.
	MaxUploadBytes = 10 << 20
	// maxDimension is the bounding box images are scaled down to.
	maxDimension = 1024
	// jpegQuality is the recompression quality.
	jpegQuality = 85
)

// Validate checks the upload against the acceptance policy without fully
// decoding it. Returns the detected format ("jpeg", "png" or "webp").
func Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image data")
	}
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf("image exceeds %d MB limit", MaxUploadBytes>>20)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("undecodable image: %v", err)
	}

	switch format {
	case "jpeg", "png", "webp":
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}

	if cfg.Width < MinDimension || cfg.Height < MinDimension {
		return "", fmt.Errorf("image too small for analysis (%dx%d, need at least %dx%d)",
			cfg.Width, cfg.Height, MinDimension, MinDimension)
	}

	return format, nil
}

// Prepare validates the upload, scales it down into the bounding box and
// re-encodes it as JPEG. Everything happens in memory; nothing touches the
// filesystem.
func Prepare(data []byte) ([]byte, error) {
	if _, err := Validate(data); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %v", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxDimension || h > maxDimension {
		scale := float64(maxDimension) / float64(w)
		if h > w {
			scale = float64(maxDimension) / float64(h)
		}
		dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding image: %v", err)
	}
	return buf.Bytes(), nil
}
