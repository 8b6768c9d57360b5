package algorithms

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-transform-editor/internal/core"
)

// gradient builds a buffer with no zero samples so zero fill is detectable.
func gradient(t *testing.T, w, h int) *core.PixelBuffer {
	t.Helper()
	pix := make([]uint8, w*h*core.Channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < core.Channels; c++ {
				pix[(y*w+x)*core.Channels+c] = uint8(1 + (x*7+y*13+c*29)%250)
			}
		}
	}
	buf, err := core.FromRGB(w, h, pix)
	require.NoError(t, err)
	return buf
}

func pixel(buf *core.PixelBuffer, x, y int) [3]uint8 {
	r, g, b := buf.At(x, y)
	return [3]uint8{r, g, b}
}

func TestFlipHorizontalIsInvolution(t *testing.T) {
	buf := gradient(t, 7, 5)

	once, err := Flip(buf, core.AxisHorizontal)
	require.NoError(t, err)
	assert.False(t, once.Equal(buf))

	twice, err := Flip(once, core.AxisHorizontal)
	require.NoError(t, err)
	assert.True(t, twice.Equal(buf))
}

func TestFlipAxes(t *testing.T) {
	buf := gradient(t, 4, 3)

	rows, err := Flip(buf, core.AxisHorizontal)
	require.NoError(t, err)
	cols, err := Flip(buf, core.AxisVertical)
	require.NoError(t, err)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, pixel(buf, x, 2-y), pixel(rows, x, y), "horizontal at %d,%d", x, y)
			assert.Equal(t, pixel(buf, 3-x, y), pixel(cols, x, y), "vertical at %d,%d", x, y)
		}
	}

	again, err := Flip(cols, core.AxisVertical)
	require.NoError(t, err)
	assert.True(t, again.Equal(buf))
}

func TestFlipRejectsUnknownAxis(t *testing.T) {
	buf := gradient(t, 2, 2)
	for _, axis := range []core.Axis{0, 3, -1} {
		_, err := Flip(buf, axis)
		assert.ErrorIs(t, err, core.ErrInvalidParameter, "axis %d", axis)
	}
}

func TestScaleFactorLimits(t *testing.T) {
	buf := gradient(t, 10, 8)

	tests := []struct {
		name    string
		fx, fy  float64
		wantErr bool
		w, h    int
	}{
		{name: "x above limit", fx: 6, fy: 1, wantErr: true},
		{name: "y above limit", fx: 1, fy: 5.01, wantErr: true},
		{name: "zero factor", fx: 0, fy: 1, wantErr: true},
		{name: "negative factor", fx: 1, fy: -2, wantErr: true},
		{name: "nan factor", fx: math.NaN(), fy: 1, wantErr: true},
		{name: "at limit", fx: 5, fy: 5, w: 50, h: 40},
		{name: "half", fx: 0.5, fy: 0.5, w: 5, h: 4},
		{name: "rounds to nearest", fx: 0.25, fy: 0.3125, w: 3, h: 3},
		{name: "clamps to one pixel", fx: 0.001, fy: 0.001, w: 1, h: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Scale(buf, tt.fx, tt.fy)
			if tt.wantErr {
				require.ErrorIs(t, err, core.ErrInvalidParameter)
				assert.Nil(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, out.Width())
			assert.Equal(t, tt.h, out.Height())
			assert.Equal(t, 3, out.Channels())
		})
	}
}

func TestScaleRejectsOversizedResult(t *testing.T) {
	wide := gradient(t, 4000, 1)

	out, err := Scale(wide, 5, 1)
	require.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "exceeds the 16384 pixel limit")

	out, err = Scale(wide, 4, 5)
	require.NoError(t, err)
	assert.Equal(t, 16000, out.Width())
	assert.Equal(t, 5, out.Height())
}

func TestScaleIdentityIsExact(t *testing.T) {
	buf := gradient(t, 9, 6)
	out, err := Scale(buf, 1, 1)
	require.NoError(t, err)
	assert.True(t, out.Equal(buf))
}

func TestScaleUniformImageStaysUniform(t *testing.T) {
	pix := make([]uint8, 4*4*3)
	for i := range pix {
		pix[i] = 200
	}
	buf, err := core.FromRGB(4, 4, pix)
	require.NoError(t, err)

	for _, f := range []float64{0.3, 1.7, 2, 5} {
		out, err := Scale(buf, f, f)
		require.NoError(t, err)
		for _, v := range out.Samples() {
			require.Equal(t, uint8(200), v, "factor %v", f)
		}
	}
}

func TestScaleDoublingInterpolates(t *testing.T) {
	buf, err := core.FromRGB(2, 1, []uint8{0, 0, 0, 100, 100, 100})
	require.NoError(t, err)

	out, err := Scale(buf, 2, 1)
	require.NoError(t, err)
	require.Equal(t, 4, out.Width())

	// source x = (x+0.5)/2 - 0.5 -> -0.25, 0.25, 0.75, 1.25 (edges replicate)
	want := []uint8{0, 25, 75, 100}
	for x, v := range want {
		r, g, b := out.At(x, 0)
		assert.Equal(t, [3]uint8{v, v, v}, [3]uint8{r, g, b}, "x=%d", x)
	}
}

func TestTranslateIsNotARoundTrip(t *testing.T) {
	const w, h = 40, 30
	buf := gradient(t, w, h)

	shifted, err := Translate(buf, 10, -5)
	require.NoError(t, err)
	back, err := Translate(shifted, -10, 5)
	require.NoError(t, err)

	assert.Equal(t, w, back.Width())
	assert.Equal(t, h, back.Height())
	assert.False(t, back.Equal(buf))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			interior := x < w-10 && y >= 5
			if interior {
				require.Equal(t, pixel(buf, x, y), pixel(back, x, y), "interior %d,%d", x, y)
			} else {
				require.Equal(t, [3]uint8{}, pixel(back, x, y), "border %d,%d", x, y)
			}
		}
	}
}

func TestTranslateShiftsContent(t *testing.T) {
	buf := gradient(t, 6, 4)
	out, err := Translate(buf, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, [3]uint8{}, pixel(out, 0, 0))
	assert.Equal(t, [3]uint8{}, pixel(out, 1, 3))
	assert.Equal(t, pixel(buf, 0, 0), pixel(out, 2, 1))
	assert.Equal(t, pixel(buf, 3, 2), pixel(out, 5, 3))

	gone, err := Translate(buf, 1000, -1000)
	require.NoError(t, err)
	for _, v := range gone.Samples() {
		require.Zero(t, v)
	}

	same, err := Translate(buf, 0, 0)
	require.NoError(t, err)
	assert.True(t, same.Equal(buf))
}

func TestRotateFullTurnsAreIdentity(t *testing.T) {
	buf := gradient(t, 11, 7)
	for _, angle := range []float64{0, 360, -360, 720} {
		out, err := Rotate(buf, angle)
		require.NoError(t, err)
		assert.True(t, out.Equal(buf), "angle %v", angle)
	}
}

func TestRotateQuarterTurnIsClockwise(t *testing.T) {
	buf := gradient(t, 4, 4)
	out, err := Rotate(buf, 90)
	require.NoError(t, err)

	// about (2, 2): source (x, y) lands on (4-y, x)
	assert.Equal(t, pixel(buf, 0, 1), pixel(out, 3, 0))
	assert.Equal(t, pixel(buf, 2, 3), pixel(out, 1, 2))
	for y := 0; y < 4; y++ {
		assert.Equal(t, [3]uint8{}, pixel(out, 0, y), "column 0 has no source")
	}
}

func TestRotateKeepsSizeAndZeroFillsCorners(t *testing.T) {
	buf := gradient(t, 30, 20)
	out, err := Rotate(buf, 45)
	require.NoError(t, err)

	assert.Equal(t, 30, out.Width())
	assert.Equal(t, 20, out.Height())
	assert.Equal(t, [3]uint8{}, pixel(out, 0, 0))
	assert.Equal(t, [3]uint8{}, pixel(out, 29, 19))
	assert.NotEqual(t, [3]uint8{}, pixel(out, 15, 10))
}

func TestRotateRejectsNonFiniteAngle(t *testing.T) {
	buf := gradient(t, 3, 3)
	_, err := Rotate(buf, math.Inf(1))
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = Rotate(buf, math.NaN())
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestDegenerateBufferIsRejected(t *testing.T) {
	var empty *core.PixelBuffer
	_, err := Rotate(empty, 10)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = Scale(empty, 1, 1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = Flip(empty, core.AxisVertical)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = Translate(empty, 1, 1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestComputeIsDeterministicAndLeavesInputAlone(t *testing.T) {
	buf := gradient(t, 13, 9)
	before := buf.Pix()

	transforms := []core.Transform{
		core.Rotate{AngleDegrees: 33.3},
		core.Scale{FactorX: 1.37, FactorY: 0.61},
		core.Flip{Axis: core.AxisVertical},
		core.Translate{DX: -3, DY: 4},
	}
	for _, tr := range transforms {
		a, err := Compute(buf, tr)
		require.NoError(t, err, tr.String())
		b, err := Compute(buf, tr)
		require.NoError(t, err, tr.String())
		assert.True(t, a.Equal(b), tr.String())
	}
	assert.Equal(t, before, buf.Pix())
}

func TestComputeRejectsNilTransform(t *testing.T) {
	_, err := Compute(gradient(t, 2, 2), nil)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.ErrorIs(t, Check(nil), core.ErrInvalidParameter)
}

func TestRoundSample(t *testing.T) {
	assert.Equal(t, uint8(0), roundSample(-3))
	assert.Equal(t, uint8(1), roundSample(0.5))
	assert.Equal(t, uint8(1), roundSample(1.49))
	assert.Equal(t, uint8(255), roundSample(254.5))
	assert.Equal(t, uint8(255), roundSample(300))
}
