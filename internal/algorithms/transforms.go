// Geometric transforms over PixelBuffers
package algorithms

import (
	"fmt"
	"math"

	"image-transform-editor/internal/core"
)

// Compute applies t to buf and returns a new buffer. buf is never modified.
func Compute(buf *core.PixelBuffer, t core.Transform) (*core.PixelBuffer, error) {
	switch v := t.(type) {
	case core.Rotate:
		return Rotate(buf, v.AngleDegrees)
	case core.Scale:
		return Scale(buf, v.FactorX, v.FactorY)
	case core.Flip:
		return Flip(buf, v.Axis)
	case core.Translate:
		return Translate(buf, v.DX, v.DY)
	case nil:
		return nil, core.NewParameterError("compute", "transform", nil, "transform is nil")
	default:
		return nil, core.NewParameterError("compute", "transform", fmt.Sprintf("%T", t), "unsupported transform")
	}
}

// Check validates the parameters of t without touching any pixels.
func Check(t core.Transform) error {
	switch v := t.(type) {
	case core.Rotate:
		return checkFinite("rotate", "angle", v.AngleDegrees)
	case core.Scale:
		if err := checkFactor("factor_x", v.FactorX); err != nil {
			return err
		}
		return checkFactor("factor_y", v.FactorY)
	case core.Flip:
		return checkAxis(v.Axis)
	case core.Translate:
		return nil
	case nil:
		return core.NewParameterError("compute", "transform", nil, "transform is nil")
	default:
		return core.NewParameterError("compute", "transform", fmt.Sprintf("%T", t), "unsupported transform")
	}
}

// Rotate turns buf clockwise by angleDegrees about (width/2, height/2).
// The output keeps the input size: corners rotated out of frame are cropped
// and uncovered areas are black.
func Rotate(buf *core.PixelBuffer, angleDegrees float64) (*core.PixelBuffer, error) {
	if err := checkBuffer("rotate", buf); err != nil {
		return nil, err
	}
	if err := checkFinite("rotate", "angle", angleDegrees); err != nil {
		return nil, err
	}
	w, h := buf.Width(), buf.Height()
	m := RotationAt(angleDegrees, float64(w)/2, float64(h)/2)
	return warpForward("rotate", buf, m, w, h, borderConstant)
}

// Scale resizes buf to max(1, round(width*factorX)) × max(1, round(height*factorY))
// using bilinear interpolation with pixel-centre alignment.
// Factors must lie in (0, 5].
func Scale(buf *core.PixelBuffer, factorX, factorY float64) (*core.PixelBuffer, error) {
	if err := checkBuffer("scale", buf); err != nil {
		return nil, err
	}
	if err := checkFactor("factor_x", factorX); err != nil {
		return nil, err
	}
	if err := checkFactor("factor_y", factorY); err != nil {
		return nil, err
	}

	w, h := buf.Width(), buf.Height()
	nw := max(1, int(math.Round(float64(w)*factorX)))
	nh := max(1, int(math.Round(float64(h)*factorY)))
	if nw > core.MaxDimension || nh > core.MaxDimension {
		return nil, core.NewParameterError("scale", "factors", fmt.Sprintf("%gx%g", factorX, factorY),
			fmt.Sprintf("result %dx%d exceeds the %d pixel limit", nw, nh, core.MaxDimension))
	}

	// destination centre (x+0.5) maps to source centre (x+0.5)*w/nw
	inverse := Translation(-0.5, -0.5).
		Multiply(Scaling(float64(w)/float64(nw), float64(h)/float64(nh))).
		Multiply(Translation(0.5, 0.5))
	return warp(buf, inverse, nw, nh, borderReplicate)
}

// Flip mirrors buf. AxisHorizontal reverses the row order, AxisVertical the
// column order.
func Flip(buf *core.PixelBuffer, axis core.Axis) (*core.PixelBuffer, error) {
	if err := checkBuffer("flip", buf); err != nil {
		return nil, err
	}
	if err := checkAxis(axis); err != nil {
		return nil, err
	}

	w, h := buf.Width(), buf.Height()
	stride := w * core.Channels
	src := buf.Samples()
	pix := make([]uint8, len(src))

	switch axis {
	case core.AxisHorizontal:
		for y := 0; y < h; y++ {
			copy(pix[y*stride:(y+1)*stride], src[(h-1-y)*stride:(h-y)*stride])
		}
	case core.AxisVertical:
		for y := 0; y < h; y++ {
			row := y * stride
			for x := 0; x < w; x++ {
				d := row + x*core.Channels
				s := row + (w-1-x)*core.Channels
				copy(pix[d:d+core.Channels], src[s:s+core.Channels])
			}
		}
	}
	return core.WrapRGB(w, h, pix)
}

// Translate shifts buf by (dx, dy) pixels. Content moved out of frame is
// lost; pixels moved into frame are zero.
func Translate(buf *core.PixelBuffer, dx, dy int) (*core.PixelBuffer, error) {
	if err := checkBuffer("translate", buf); err != nil {
		return nil, err
	}
	w, h := buf.Width(), buf.Height()
	return warpForward("translate", buf, Translation(float64(dx), float64(dy)), w, h, borderConstant)
}

func checkBuffer(op string, buf *core.PixelBuffer) error {
	if err := buf.Validate(); err != nil {
		return core.NewParameterError(op, "buffer", nil, err.Error())
	}
	return nil
}

func checkFinite(op, param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return core.NewParameterError(op, param, v, "must be a finite number")
	}
	return nil
}

func checkFactor(param string, v float64) error {
	if err := checkFinite("scale", param, v); err != nil {
		return err
	}
	if v <= 0 {
		return core.NewParameterError("scale", param, v, "scale factor must be greater than 0")
	}
	if v > core.MaxScaleFactor {
		return core.NewParameterError("scale", param, v,
			fmt.Sprintf("scale factor cannot exceed %g to avoid memory problems", core.MaxScaleFactor))
	}
	return nil
}

func checkAxis(axis core.Axis) error {
	if !axis.Valid() {
		return core.NewParameterError("flip", "axis", axis, "axis must be 'horizontal' or 'vertical'")
	}
	return nil
}
