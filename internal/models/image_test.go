// ABOUTME: Tests for Image model.
// ABOUTME: Validates PNG encoding, MIME sniffing and decoding.

package models

import (
	"image"
	"image/color"
	"testing"
)

func TestEncodePNGRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.Set(1, 1, color.RGBA{R: 255, A: 255})

	img, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	if img.MimeType != "image/png" {
		t.Errorf("expected image/png, got %q", img.MimeType)
	}

	sniffed := NewImage(img.Data)
	if sniffed.MimeType != "image/png" {
		t.Errorf("expected sniffed image/png, got %q", sniffed.MimeType)
	}

	decoded, err := sniffed.Decode()
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 3 {
		t.Errorf("unexpected bounds %v", decoded.Bounds())
	}
}

func TestDecodeAbsentImage(t *testing.T) {
	var img *Image
	got, err := img.Decode()
	if err != nil || got != nil {
		t.Errorf("expected nil image and nil error, got %v, %v", got, err)
	}
}

func TestDecodeCorruptImage(t *testing.T) {
	if _, err := NewImage([]byte("not an image")).Decode(); err == nil {
		t.Error("expected decode error for corrupt data")
	}
}
