// Concrete implementations of the comparison metrics
package metrics

import (
	"fmt"
	"math"

	"image-transform-editor/internal/core"
)

func checkPair(before, after *core.PixelBuffer) error {
	if before == nil || after == nil {
		return fmt.Errorf("empty images")
	}
	if before.Width() != after.Width() || before.Height() != after.Height() {
		return fmt.Errorf("image dimensions mismatch: %s vs %s", before, after)
	}
	return nil
}

// MSE implements Mean Squared Error over all samples
type MSE struct{}

// NewMSE creates a new MSE metric
func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(before, after *core.PixelBuffer) (float64, error) {
	if err := checkPair(before, after); err != nil {
		return 0, err
	}
	return meanSquaredError(before.Samples(), after.Samples()), nil
}

func meanSquaredError(a, b []uint8) float64 {
	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum / float64(len(a))
}

func (m *MSE) GetName() string              { return "MSE" }
func (m *MSE) GetDescription() string       { return "Mean Squared Error" }
func (m *MSE) GetRange() (float64, float64) { return 0, 65025 }
func (m *MSE) IsHigherBetter() bool         { return false }

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

// NewPSNR creates a new PSNR metric
func NewPSNR() *PSNR {
	return &PSNR{}
}

func (p *PSNR) Calculate(before, after *core.PixelBuffer) (float64, error) {
	if err := checkPair(before, after); err != nil {
		return 0, err
	}

	mse := meanSquaredError(before.Samples(), after.Samples())
	if mse == 0 {
		return math.Inf(1), nil // Perfect match
	}

	maxVal := 255.0
	return 20 * math.Log10(maxVal/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string { return "PSNR" }

func (p *PSNR) GetDescription() string {
	return "Peak Signal-to-Noise Ratio - higher means closer images"
}

func (p *PSNR) GetRange() (float64, float64) {
	return 0, 100 // Practical range, identical images give +Inf
}

func (p *PSNR) IsHigherBetter() bool { return true }

// MAE implements Mean Absolute Error over all samples
type MAE struct{}

func NewMAE() *MAE {
	return &MAE{}
}

func (m *MAE) Calculate(before, after *core.PixelBuffer) (float64, error) {
	if err := checkPair(before, after); err != nil {
		return 0, err
	}

	a, b := before.Samples(), after.Samples()
	sum := 0.0
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum / float64(len(a)), nil
}

func (m *MAE) GetName() string              { return "MAE" }
func (m *MAE) GetDescription() string       { return "Mean Absolute Error" }
func (m *MAE) GetRange() (float64, float64) { return 0, 255 }
func (m *MAE) IsHigherBetter() bool         { return false }

// ChangedRatio is the fraction of pixels whose RGB value differs
type ChangedRatio struct{}

func NewChangedRatio() *ChangedRatio {
	return &ChangedRatio{}
}

func (c *ChangedRatio) Calculate(before, after *core.PixelBuffer) (float64, error) {
	if err := checkPair(before, after); err != nil {
		return 0, err
	}

	a, b := before.Samples(), after.Samples()
	changed := 0
	for i := 0; i < len(a); i += core.Channels {
		if a[i] != b[i] || a[i+1] != b[i+1] || a[i+2] != b[i+2] {
			changed++
		}
	}
	return float64(changed) / float64(len(a)/core.Channels), nil
}

func (c *ChangedRatio) GetName() string              { return "Changed" }
func (c *ChangedRatio) GetDescription() string       { return "Fraction of pixels that differ" }
func (c *ChangedRatio) GetRange() (float64, float64) { return 0, 1 }
func (c *ChangedRatio) IsHigherBetter() bool         { return false }
