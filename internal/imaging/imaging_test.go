package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	t.Run("AcceptsPNG", func(t *testing.T) {
		format, err := Validate(encodePNG(t, 200, 150))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if format != "png" {
			t.Errorf("Expected format 'png', got '%s'", format)
		}
	})

	t.Run("RejectsTooSmall", func(t *testing.T) {
		_, err := Validate(encodePNG(t, 50, 50))
		if err == nil {
			t.Fatal("Expected an error for a 50x50 image, got nil")
		}
		if !strings.Contains(err.Error(), "too small") {
			t.Errorf("Expected a 'too small' error, got: %v", err)
		}
	})

	t.Run("RejectsEmpty", func(t *testing.T) {
		if _, err := Validate(nil); err == nil {
			t.Fatal("Expected an error for empty data, got nil")
		}
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		if _, err := Validate([]byte("this is not an image")); err == nil {
			t.Fatal("Expected an error for garbage data, got nil")
		}
	})
}

func TestPrepare(t *testing.T) {
	t.Run("ReencodesAsJPEG", func(t *testing.T) {
		out, err := Prepare(encodePNG(t, 300, 200))
		if err != nil {
			t.Fatalf("Prepare failed: %v", err)
		}
		cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("Output is not decodable: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("Expected jpeg output, got %s", format)
		}
		if cfg.Width != 300 || cfg.Height != 200 {
			t.Errorf("Expected 300x200 to pass through unscaled, got %dx%d", cfg.Width, cfg.Height)
		}
	})

	t.Run("ScalesDownLargeImages", func(t *testing.T) {
		out, err := Prepare(encodePNG(t, 2048, 1024))
		if err != nil {
			t.Fatalf("Prepare failed: %v", err)
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("Output is not decodable: %v", err)
		}
		if cfg.Width != 1024 || cfg.Height != 512 {
			t.Errorf("Expected 1024x512 after scaling, got %dx%d", cfg.Width, cfg.Height)
		}
	})

	t.Run("AcceptsJPEGInput", func(t *testing.T) {
		var buf bytes.Buffer
		img := image.NewRGBA(image.Rect(0, 0, 120, 120))
		if err := jpeg.Encode(&buf, img, nil); err != nil {
			t.Fatalf("failed to encode test jpeg: %v", err)
		}
		if _, err := Prepare(buf.Bytes()); err != nil {
			t.Fatalf("Prepare failed on jpeg input: %v", err)
		}
	})

	t.Run("RejectsInvalidInput", func(t *testing.T) {
		if _, err := Prepare(encodePNG(t, 50, 50)); err == nil {
			t.Fatal("Expected an error for an undersized image, got nil")
		}
	})
}
