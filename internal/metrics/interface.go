// Similarity metrics between two images of the edit timeline
package metrics

import (
	"fmt"
	"sort"

	"image-transform-editor/internal/core"
)

// Metric defines the interface for image comparison metrics
type Metric interface {
	// Calculate compares two buffers of identical size
	Calculate(before, after *core.PixelBuffer) (float64, error)

	GetName() string
	GetDescription() string

	// GetRange returns the practical value range (min, max)
	GetRange() (float64, float64)

	// IsHigherBetter returns true if higher values mean the images are closer
	IsHigherBetter() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates an evaluator with the default metrics registered
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}

	e.RegisterDefaultMetrics()

	return e
}

// RegisterDefaultMetrics registers all default metrics
func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("psnr", NewPSNR())
	e.Register("mse", NewMSE())
	e.Register("mae", NewMAE())
	e.Register("changed", NewChangedRatio())
}

// Register registers a metric
func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Calculate calculates a specific metric
func (e *Evaluator) Calculate(name string, before, after *core.PixelBuffer) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}

	return metric.Calculate(before, after)
}

// CalculateAll calculates every registered metric that applies
func (e *Evaluator) CalculateAll(before, after *core.PixelBuffer) map[string]float64 {
	results := make(map[string]float64)

	for name, metric := range e.metrics {
		if value, err := metric.Calculate(before, after); err == nil {
			results[name] = value
		}
	}

	return results
}

// GetMetricInfo returns information about all metrics
func (e *Evaluator) GetMetricInfo() map[string]MetricInfo {
	info := make(map[string]MetricInfo)

	for name, metric := range e.metrics {
		min, max := metric.GetRange()
		info[name] = MetricInfo{
			Name:         metric.GetName(),
			Description:  metric.GetDescription(),
			Range:        [2]float64{min, max},
			HigherBetter: metric.IsHigherBetter(),
		}
	}

	return info
}

// MetricInfo provides metadata about a metric
type MetricInfo struct {
	Name         string
	Description  string
	Range        [2]float64 // [min, max]
	HigherBetter bool
}

// Comparison summarises how two timeline frames differ
type Comparison struct {
	BeforeSize string             `json:"before_size"`
	AfterSize  string             `json:"after_size"`
	SameSize   bool               `json:"same_size"`
	Identical  bool               `json:"identical"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Compare builds a Comparison. Pixel metrics are only computed when both
// buffers have the same size.
func (e *Evaluator) Compare(before, after *core.PixelBuffer) Comparison {
	c := Comparison{
		BeforeSize: before.String(),
		AfterSize:  after.String(),
		SameSize:   before.Width() == after.Width() && before.Height() == after.Height(),
	}
	if c.SameSize {
		c.Identical = before.Equal(after)
		c.Metrics = e.CalculateAll(before, after)
	}
	return c
}

// Summary renders the comparison as one line, metrics in name order
func (c Comparison) Summary() string {
	if !c.SameSize {
		return fmt.Sprintf("size %s -> %s", c.BeforeSize, c.AfterSize)
	}
	if c.Identical {
		return fmt.Sprintf("identical (%s)", c.AfterSize)
	}

	names := make([]string, 0, len(c.Metrics))
	for name := range c.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	out := c.AfterSize
	for _, name := range names {
		out += fmt.Sprintf(" %s=%.2f", name, c.Metrics[name])
	}
	return out
}
