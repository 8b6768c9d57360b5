package core

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPixelBufferRejectsDegenerateSizes(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPixelBuffer(tt.width, tt.height)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
		})
	}
}

func TestFromRGBCopiesInput(t *testing.T) {
	pix := []uint8{1, 2, 3, 4, 5, 6}
	buf, err := FromRGB(2, 1, pix)
	require.NoError(t, err)

	pix[0] = 99
	r, g, b := buf.At(0, 0)
	assert.Equal(t, []uint8{1, 2, 3}, []uint8{r, g, b})
	r, g, b = buf.At(1, 0)
	assert.Equal(t, []uint8{4, 5, 6}, []uint8{r, g, b})
}

func TestFromRGBRejectsWrongLength(t *testing.T) {
	_, err := FromRGB(2, 2, make([]uint8, 5))
	require.ErrorIs(t, err, ErrInvalidParameter)

	var perr *ParameterError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "pix", perr.Param)
}

func TestPixReturnsCopy(t *testing.T) {
	buf, err := FromRGB(1, 1, []uint8{10, 20, 30})
	require.NoError(t, err)

	out := buf.Pix()
	out[0] = 0
	r, _, _ := buf.At(0, 0)
	assert.Equal(t, uint8(10), r)
}

func TestCloneAndEqual(t *testing.T) {
	buf, err := FromRGB(2, 1, []uint8{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	clone := buf.Clone()
	assert.True(t, buf.Equal(clone))
	assert.NotSame(t, buf, clone)

	other, err := FromRGB(1, 2, []uint8{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.False(t, buf.Equal(other), "same samples but different shape")

	var nilBuf *PixelBuffer
	assert.True(t, nilBuf.Equal(nil))
	assert.False(t, buf.Equal(nil))
}

func TestImageConversionRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	src.Set(0, 0, color.RGBA{255, 0, 0, 255})
	src.Set(2, 1, color.RGBA{0, 128, 64, 255})

	buf, err := FromImage(src)
	require.NoError(t, err)
	assert.Equal(t, 3, buf.Width())
	assert.Equal(t, 2, buf.Height())
	assert.Equal(t, 3, buf.Channels())

	r, g, b := buf.At(2, 1)
	assert.Equal(t, []uint8{0, 128, 64}, []uint8{r, g, b})

	back := buf.ToImage()
	assert.Equal(t, src.Pix, back.Pix)

	// Alpha is dropped on the way in and written opaque on the way out.
	translucent := image.NewRGBA(image.Rect(0, 0, 1, 1))
	buf, err = FromImage(translucent)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 255}, buf.ToImage().Pix)
}

func TestValidateImageLimits(t *testing.T) {
	buf, err := NewPixelBuffer(4, 4)
	require.NoError(t, err)
	assert.NoError(t, ValidateImage(buf))

	var empty *PixelBuffer
	assert.ErrorIs(t, ValidateImage(empty), ErrInvalidParameter)
}

func TestTransformDescriptions(t *testing.T) {
	tests := []struct {
		transform Transform
		name      string
		text      string
	}{
		{Rotate{AngleDegrees: 90}, "rotate", "rotate 90°"},
		{Scale{FactorX: 2, FactorY: 0.5}, "scale", "scale 2x, 0.5y"},
		{Flip{Axis: AxisHorizontal}, "flip", "flip horizontal"},
		{Translate{DX: 10, DY: -5}, "translate", "translate (10, -5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.transform.Name())
			assert.Equal(t, tt.text, tt.transform.String())
		})
	}

	assert.False(t, Axis(0).Valid())
	assert.Equal(t, "Axis(7)", Axis(7).String())
}
