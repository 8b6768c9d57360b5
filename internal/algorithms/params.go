package algorithms

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"image-transform-editor/internal/core"
)

// ParseAxis accepts "horizontal" or "vertical", case-insensitively.
func ParseAxis(s string) (core.Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal":
		return core.AxisHorizontal, nil
	case "vertical":
		return core.AxisVertical, nil
	}
	return 0, core.NewParameterError("flip", "axis", s, "axis must be 'horizontal' or 'vertical'")
}

// ParseParameters converts user-typed values, one per parameter of the named
// transform, into typed parameters for Build.
func ParseParameters(name string, raw []string) (map[string]interface{}, error) {
	algorithm, exists := Get(name)
	if !exists {
		return nil, unknownAlgorithm(name)
	}

	infos := algorithm.GetParameterInfo()
	if len(raw) != len(infos) {
		return nil, core.NewParameterError(name, "", nil,
			fmt.Sprintf("expected %d parameter(s), got %d", len(infos), len(raw)))
	}

	params := make(map[string]interface{}, len(infos))
	for i, info := range infos {
		text := strings.TrimSpace(raw[i])
		switch info.Type {
		case "float":
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, core.NewParameterError(name, info.Name, text, "parameters must be valid numbers")
			}
			params[info.Name] = v
		case "int":
			v, err := strconv.Atoi(text)
			if err != nil {
				return nil, core.NewParameterError(name, info.Name, text, "parameters must be valid integers")
			}
			params[info.Name] = v
		case "enum":
			params[info.Name] = strings.ToLower(text)
		default:
			params[info.Name] = text
		}
	}
	return params, nil
}

// ParseTransform parses raw values for the named transform and builds it.
func ParseTransform(name string, raw []string) (core.Transform, error) {
	algorithm, exists := Get(name)
	if !exists {
		return nil, unknownAlgorithm(name)
	}
	params, err := ParseParameters(name, raw)
	if err != nil {
		return nil, err
	}
	return algorithm.Build(params)
}

// ParseOp parses the compact form "name=v1,v2", e.g. "scale=2,0.5" or
// "flip=vertical".
func ParseOp(op string) (core.Transform, error) {
	name, values, found := strings.Cut(op, "=")
	if !found {
		return nil, core.NewParameterError("op", "", op, "expected name=value[,value]")
	}
	return ParseTransform(strings.ToLower(strings.TrimSpace(name)), strings.Split(values, ","))
}

func floatParam(op string, params map[string]interface{}, name string, def float64) (float64, error) {
	val, ok := params[name]
	if !ok {
		return def, nil
	}
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	}
	return 0, core.NewParameterError(op, name, val, "must be a number")
}

func intParam(op string, params map[string]interface{}, name string) (int, error) {
	val, ok := params[name]
	if !ok {
		return 0, nil
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
			return 0, core.NewParameterError(op, name, v, "must be a whole number of pixels")
		}
		return int(v), nil
	}
	return 0, core.NewParameterError(op, name, val, "must be an integer")
}

func axisParam(params map[string]interface{}, name string) (core.Axis, error) {
	switch v := params[name].(type) {
	case core.Axis:
		if !v.Valid() {
			return 0, checkAxis(v)
		}
		return v, nil
	case string:
		return ParseAxis(v)
	case nil:
		return core.AxisHorizontal, nil
	}
	return 0, core.NewParameterError("flip", name, params[name], "axis must be 'horizontal' or 'vertical'")
}
