// ABOUTME: Image model for pictures attached to notes.
// ABOUTME: Stores encoded bytes; decoding happens on demand.

package models

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
)

type Image struct {
	Data     []byte
	MimeType string
}

func NewImage(data []byte) *Image {
	return &Image{
		Data:     data,
		MimeType: http.DetectContentType(data),
	}
}

// EncodePNG converts a captured picture into its stored form.
func EncodePNG(img image.Image) (*Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return &Image{Data: buf.Bytes(), MimeType: "image/png"}, nil
}

func (i *Image) Decode() (image.Image, error) {
	if i == nil || len(i.Data) == 0 {
		return nil, nil
	}
	img, _, err := image.Decode(bytes.NewReader(i.Data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Probe checks that the bytes decode without materializing the pixels.
func (i *Image) Probe() (image.Config, string, error) {
	return image.DecodeConfig(bytes.NewReader(i.Data))
}

// Equal compares image bytes. An image without data equals no image.
func (i *Image) Equal(o *Image) bool {
	return bytes.Equal(i.bytes(), o.bytes())
}

func (i *Image) bytes() []byte {
	if i == nil {
		return nil
	}
	return i.Data
}
