// Transform registry used by the CLI and GUI to describe and build transforms
package algorithms

import (
	"fmt"

	"image-transform-editor/internal/core"
)

// Algorithm describes one transform kind to presentation layers.
type Algorithm interface {
	// Build turns typed parameters into a Transform value.
	Build(params map[string]interface{}) (core.Transform, error)
	Apply(input *core.PixelBuffer, params map[string]interface{}) (*core.PixelBuffer, error)
	GetDefaultParams() map[string]interface{}
	GetName() string
	GetLabel() string
	GetDescription() string
	Validate(params map[string]interface{}) error
	GetParameterInfo() []ParameterInfo
}

// ParameterInfo describes a parameter for UI generation
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "int", "float", "enum"
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
	Default     interface{} `json:"default"`
	Description string      `json:"description"`
	Options     []string    `json:"options,omitempty"` // For enum type
}

var (
	algorithms = make(map[string]Algorithm)
	order      []string
)

func Register(name string, algorithm Algorithm) {
	if _, exists := algorithms[name]; !exists {
		order = append(order, name)
	}
	algorithms[name] = algorithm
}

func Get(name string) (Algorithm, bool) {
	algorithm, exists := algorithms[name]
	return algorithm, exists
}

func Apply(name string, input *core.PixelBuffer, params map[string]interface{}) (*core.PixelBuffer, error) {
	algorithm, exists := algorithms[name]
	if !exists {
		return nil, unknownAlgorithm(name)
	}

	return algorithm.Apply(input, params)
}

func ValidateParameters(name string, params map[string]interface{}) error {
	algorithm, exists := algorithms[name]
	if !exists {
		return unknownAlgorithm(name)
	}

	return algorithm.Validate(params)
}

func IsValidAlgorithm(name string) bool {
	_, exists := algorithms[name]
	return exists
}

// Names returns the registered transform names in registration order.
func Names() []string {
	result := make([]string, len(order))
	copy(result, order)
	return result
}

func GetAllAlgorithms() map[string]Algorithm {
	result := make(map[string]Algorithm)
	for name, algorithm := range algorithms {
		result[name] = algorithm
	}
	return result
}

func unknownAlgorithm(name string) error {
	return core.NewParameterError("registry", "transform", name, fmt.Sprintf("algorithm not found: %s", name))
}

// transformAlgorithm adapts a builder function to the Algorithm interface.
type transformAlgorithm struct {
	name        string
	label       string
	description string
	params      []ParameterInfo
	build       func(params map[string]interface{}) (core.Transform, error)
}

func (a *transformAlgorithm) Build(params map[string]interface{}) (core.Transform, error) {
	t, err := a.build(params)
	if err != nil {
		return nil, err
	}
	if err := Check(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (a *transformAlgorithm) Apply(input *core.PixelBuffer, params map[string]interface{}) (*core.PixelBuffer, error) {
	t, err := a.Build(params)
	if err != nil {
		return nil, err
	}
	return Compute(input, t)
}

func (a *transformAlgorithm) GetDefaultParams() map[string]interface{} {
	result := make(map[string]interface{}, len(a.params))
	for _, p := range a.params {
		result[p.Name] = p.Default
	}
	return result
}

func (a *transformAlgorithm) GetName() string                   { return a.name }
func (a *transformAlgorithm) GetLabel() string                  { return a.label }
func (a *transformAlgorithm) GetDescription() string            { return a.description }
func (a *transformAlgorithm) GetParameterInfo() []ParameterInfo { return a.params }

func (a *transformAlgorithm) Validate(params map[string]interface{}) error {
	_, err := a.Build(params)
	return err
}

func NewRotateAlgorithm() Algorithm {
	return &transformAlgorithm{
		name:        "rotate",
		label:       "Rotate",
		description: "Rotate about the image centre, clockwise in degrees; size is kept",
		params: []ParameterInfo{
			{Name: "angle", Type: "float", Default: 90.0, Description: "Angle (degrees)"},
		},
		build: func(params map[string]interface{}) (core.Transform, error) {
			angle, err := floatParam("rotate", params, "angle", 90)
			if err != nil {
				return nil, err
			}
			return core.Rotate{AngleDegrees: angle}, nil
		},
	}
}

func NewScaleAlgorithm() Algorithm {
	return &transformAlgorithm{
		name:        "scale",
		label:       "Scale",
		description: "Resize with bilinear interpolation",
		params: []ParameterInfo{
			{Name: "factor_x", Type: "float", Min: 0.0, Max: core.MaxScaleFactor, Default: 1.0, Description: "Scale factor X (max 5)"},
			{Name: "factor_y", Type: "float", Min: 0.0, Max: core.MaxScaleFactor, Default: 1.0, Description: "Scale factor Y (max 5)"},
		},
		build: func(params map[string]interface{}) (core.Transform, error) {
			fx, err := floatParam("scale", params, "factor_x", 1)
			if err != nil {
				return nil, err
			}
			fy, err := floatParam("scale", params, "factor_y", 1)
			if err != nil {
				return nil, err
			}
			return core.Scale{FactorX: fx, FactorY: fy}, nil
		},
	}
}

func NewFlipAlgorithm() Algorithm {
	return &transformAlgorithm{
		name:        "flip",
		label:       "Flip",
		description: "Mirror across the horizontal or vertical midline",
		params: []ParameterInfo{
			{Name: "axis", Type: "enum", Default: "horizontal", Description: "Axis (horizontal/vertical)",
				Options: []string{"horizontal", "vertical"}},
		},
		build: func(params map[string]interface{}) (core.Transform, error) {
			axis, err := axisParam(params, "axis")
			if err != nil {
				return nil, err
			}
			return core.Flip{Axis: axis}, nil
		},
	}
}

func NewTranslateAlgorithm() Algorithm {
	return &transformAlgorithm{
		name:        "translate",
		label:       "Translate",
		description: "Shift by whole pixels, filling uncovered areas with black",
		params: []ParameterInfo{
			{Name: "dx", Type: "int", Default: 0, Description: "Offset X (px)"},
			{Name: "dy", Type: "int", Default: 0, Description: "Offset Y (px)"},
		},
		build: func(params map[string]interface{}) (core.Transform, error) {
			dx, err := intParam("translate", params, "dx")
			if err != nil {
				return nil, err
			}
			dy, err := intParam("translate", params, "dy")
			if err != nil {
				return nil, err
			}
			return core.Translate{DX: dx, DY: dy}, nil
		},
	}
}

func init() {
	Register("rotate", NewRotateAlgorithm())
	Register("scale", NewScaleAlgorithm())
	Register("flip", NewFlipAlgorithm())
	Register("translate", NewTranslateAlgorithm())
}
