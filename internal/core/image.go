// Core image data structure shared by every component
package core

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
)

// Channels is the fixed sample count per pixel (red, green, blue).
const Channels = 3

// MaxDimension bounds the width and height accepted from image sources.
const MaxDimension = 16384

// PixelBuffer is an immutable RGB raster of height×width×3 uint8 samples,
// stored row-major with interleaved channels.
//
// Once created a PixelBuffer is never mutated, so the same value can be
// referenced from several history entries.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint8
}

// NewPixelBuffer returns a zero (black) buffer of the given size.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*Channels),
	}, nil
}

// FromRGB copies pix into a new buffer. pix must hold width*height*3 samples.
func FromRGB(width, height int, pix []uint8) (*PixelBuffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height*Channels {
		return nil, NewParameterError("pixel buffer", "pix", len(pix),
			fmt.Sprintf("expected %d samples for %dx%d", width*height*Channels, width, height))
	}
	owned := make([]uint8, len(pix))
	copy(owned, pix)
	return &PixelBuffer{width: width, height: height, pix: owned}, nil
}

// WrapRGB builds a buffer that takes ownership of pix without copying.
// The caller must not modify pix afterwards.
func WrapRGB(width, height int, pix []uint8) (*PixelBuffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height*Channels {
		return nil, NewParameterError("pixel buffer", "pix", len(pix),
			fmt.Sprintf("expected %d samples for %dx%d", width*height*Channels, width, height))
	}
	return &PixelBuffer{width: width, height: height, pix: pix}, nil
}

// FromImage converts any image.Image into an RGB buffer. Alpha is dropped.
func FromImage(img image.Image) (*PixelBuffer, error) {
	b := img.Bounds()
	buf, err := NewPixelBuffer(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			buf.pix[i] = c.R
			buf.pix[i+1] = c.G
			buf.pix[i+2] = c.B
			i += Channels
		}
	}
	return buf, nil
}

func checkDimensions(width, height int) error {
	if width < 1 || height < 1 {
		return NewParameterError("pixel buffer", "dimensions", fmt.Sprintf("%dx%d", width, height),
			"width and height must be at least 1")
	}
	return nil
}

// Width returns the number of columns.
func (b *PixelBuffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *PixelBuffer) Height() int { return b.height }

// Channels always returns 3.
func (b *PixelBuffer) Channels() int { return Channels }

// Bounds returns the buffer rectangle anchored at the origin.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// At returns the RGB samples at column x, row y.
func (b *PixelBuffer) At(x, y int) (r, g, bl uint8) {
	i := (y*b.width + x) * Channels
	return b.pix[i], b.pix[i+1], b.pix[i+2]
}

// Pix returns a copy of the raw samples.
func (b *PixelBuffer) Pix() []uint8 {
	out := make([]uint8, len(b.pix))
	copy(out, b.pix)
	return out
}

// Samples exposes the backing slice for read-only hot loops inside this module.
func (b *PixelBuffer) Samples() []uint8 { return b.pix }

// Clone returns a deep copy.
func (b *PixelBuffer) Clone() *PixelBuffer {
	return &PixelBuffer{width: b.width, height: b.height, pix: b.Pix()}
}

// Equal reports whether both buffers have the same size and identical samples.
func (b *PixelBuffer) Equal(other *PixelBuffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.width == other.width && b.height == other.height && bytes.Equal(b.pix, other.pix)
}

// Validate checks the buffer invariants.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return NewParameterError("pixel buffer", "", nil, "buffer is nil")
	}
	if err := checkDimensions(b.width, b.height); err != nil {
		return err
	}
	if len(b.pix) != b.width*b.height*Channels {
		return NewParameterError("pixel buffer", "pix", len(b.pix), "sample count does not match dimensions")
	}
	return nil
}

// ToImage converts the buffer to an opaque *image.RGBA for display.
func (b *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for i, j := 0, 0; i < len(b.pix); i, j = i+Channels, j+4 {
		img.Pix[j] = b.pix[i]
		img.Pix[j+1] = b.pix[i+1]
		img.Pix[j+2] = b.pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// String describes the buffer shape.
func (b *PixelBuffer) String() string {
	return fmt.Sprintf("%dx%dx%d", b.width, b.height, Channels)
}

// ValidateImage checks that a decoded image fits the editor's limits.
func ValidateImage(b *PixelBuffer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.width > MaxDimension || b.height > MaxDimension {
		return fmt.Errorf("image too large: %dx%d (max: %d)", b.width, b.height, MaxDimension)
	}
	return nil
}
