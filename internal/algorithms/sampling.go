// Inverse-mapping warp with bilinear interpolation
package algorithms

import (
	"math"

	"image-transform-editor/internal/core"
)

// borderMode decides what a sample outside the source image reads as.
type borderMode int

const (
	// borderConstant reads zero (black) outside the source.
	borderConstant borderMode = iota
	// borderReplicate clamps coordinates to the nearest edge pixel.
	borderReplicate
)

// warp builds a width×height buffer whose pixel (x, y) is the bilinear sample
// of src at inverse.Apply(x, y). Destination pixels sit on integer coordinates.
func warp(src *core.PixelBuffer, inverse Affine, width, height int, border borderMode) (*core.PixelBuffer, error) {
	pix := make([]uint8, width*height*core.Channels)
	sp := src.Samples()
	sw, sh := src.Width(), src.Height()

	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx, sy := inverse.Apply(float64(x), float64(y))
			sampleBilinear(sp, sw, sh, sx, sy, border, pix[i:i+core.Channels])
			i += core.Channels
		}
	}
	return core.WrapRGB(width, height, pix)
}

// warpForward inverts m and warps src with it.
func warpForward(op string, src *core.PixelBuffer, m Affine, width, height int, border borderMode) (*core.PixelBuffer, error) {
	inv, ok := m.Invert()
	if !ok {
		return nil, core.NewParameterError(op, "matrix", m, "matrix is not invertible")
	}
	return warp(src, inv, width, height, border)
}

// sampleBilinear writes the interpolated RGB value at (sx, sy) into dst.
func sampleBilinear(pix []uint8, w, h int, sx, sy float64, border borderMode, dst []uint8) {
	if border == borderReplicate {
		sx = clampFloat(sx, 0, float64(w-1))
		sy = clampFloat(sy, 0, float64(h-1))
	} else if sx <= -1 || sy <= -1 || sx >= float64(w) || sy >= float64(h) {
		dst[0], dst[1], dst[2] = 0, 0, 0
		return
	}

	x0f, y0f := math.Floor(sx), math.Floor(sy)
	fx, fy := sx-x0f, sy-y0f
	x0, y0 := int(x0f), int(y0f)

	w00 := (1 - fx) * (1 - fy)
	w10 := fx * (1 - fy)
	w01 := (1 - fx) * fy
	w11 := fx * fy

	for c := 0; c < core.Channels; c++ {
		v := w00*fetch(pix, w, h, x0, y0, c, border) +
			w10*fetch(pix, w, h, x0+1, y0, c, border) +
			w01*fetch(pix, w, h, x0, y0+1, c, border) +
			w11*fetch(pix, w, h, x0+1, y0+1, c, border)
		dst[c] = roundSample(v)
	}
}

func fetch(pix []uint8, w, h, x, y, c int, border borderMode) float64 {
	if x < 0 || y < 0 || x >= w || y >= h {
		if border == borderConstant {
			return 0
		}
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
	}
	return float64(pix[(y*w+x)*core.Channels+c])
}

// roundSample rounds half up and saturates to the uint8 range.
func roundSample(v float64) uint8 {
	r := math.Floor(v + 0.5)
	if r <= 0 {
		return 0
	}
	if r >= 255 {
		return 255
	}
	return uint8(r)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
