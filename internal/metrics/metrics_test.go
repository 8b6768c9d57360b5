package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-transform-editor/internal/core"
)

func buffer(t *testing.T, w, h int, pix ...uint8) *core.PixelBuffer {
	t.Helper()
	buf, err := core.FromRGB(w, h, pix)
	require.NoError(t, err)
	return buf
}

func TestIdenticalBuffers(t *testing.T) {
	a := buffer(t, 2, 1, 10, 20, 30, 40, 50, 60)
	e := NewEvaluator()

	psnr, err := e.Calculate("psnr", a, a.Clone())
	require.NoError(t, err)
	assert.True(t, math.IsInf(psnr, 1))

	all := e.CalculateAll(a, a.Clone())
	assert.Equal(t, 0.0, all["mse"])
	assert.Equal(t, 0.0, all["mae"])
	assert.Equal(t, 0.0, all["changed"])
}

func TestDifferences(t *testing.T) {
	a := buffer(t, 2, 1, 0, 0, 0, 0, 0, 0)
	b := buffer(t, 2, 1, 0, 0, 0, 30, 0, 0)
	e := NewEvaluator()

	mse, err := e.Calculate("mse", a, b)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, mse, 1e-9)

	mae, err := e.Calculate("mae", a, b)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, mae, 1e-9)

	changed, err := e.Calculate("changed", a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, changed, 1e-9)

	psnr, err := e.Calculate("psnr", a, b)
	require.NoError(t, err)
	assert.InDelta(t, 20*math.Log10(255/math.Sqrt(150)), psnr, 1e-9)
}

func TestMismatchedSizes(t *testing.T) {
	a := buffer(t, 1, 1, 1, 2, 3)
	b := buffer(t, 2, 1, 1, 2, 3, 4, 5, 6)
	e := NewEvaluator()

	_, err := e.Calculate("mse", a, b)
	assert.Error(t, err)
	assert.Empty(t, e.CalculateAll(a, b))

	c := e.Compare(a, b)
	assert.False(t, c.SameSize)
	assert.Equal(t, "size 1x1x3 -> 2x1x3", c.Summary())

	_, err = e.Calculate("ssim", a, a)
	assert.Error(t, err)
}

func TestCompareSummary(t *testing.T) {
	a := buffer(t, 1, 1, 1, 2, 3)
	e := NewEvaluator()

	assert.Equal(t, "identical (1x1x3)", e.Compare(a, a.Clone()).Summary())

	b := buffer(t, 1, 1, 1, 2, 13)
	c := e.Compare(a, b)
	assert.False(t, c.Identical)
	assert.Contains(t, c.Summary(), "changed=1.00")
	assert.Contains(t, c.Summary(), "mse=33.33")
}

func TestMetricInfo(t *testing.T) {
	info := NewEvaluator().GetMetricInfo()
	require.Contains(t, info, "psnr")
	assert.True(t, info["psnr"].HigherBetter)
	assert.False(t, info["mse"].HigherBetter)
	assert.Equal(t, [2]float64{0, 255}, info["mae"].Range)
}
