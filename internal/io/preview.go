package io

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"image-transform-editor/internal/core"
)

// Previewer shows a before/after pair.
type Previewer interface {
	Show(title string, before, after *core.PixelBuffer) error
}

// FitScale is the factor (at most 1) that fits two images placed side by side
// inside maxW x maxH.
func FitScale(before, after image.Point, maxW, maxH int) float64 {
	width := before.X + after.X
	height := before.Y
	if after.Y > height {
		height = after.Y
	}
	if width <= 0 || height <= 0 {
		return 1
	}

	scale := math.Min(1, float64(maxH)/float64(height))
	return math.Min(scale, float64(maxW)/float64(width))
}

func scaledSize(p image.Point, scale float64) image.Point {
	return image.Pt(
		max(1, int(float64(p.X)*scale)),
		max(1, int(float64(p.Y)*scale)),
	)
}

// Window displays comparisons in an OpenCV highgui window and waits for a
// key press before returning.
type Window struct {
	maxWidth  int
	maxHeight int
	waitMs    int
}

func NewWindow(maxWidth, maxHeight int) *Window {
	return &Window{maxWidth: maxWidth, maxHeight: maxHeight}
}

func (w *Window) Show(title string, before, after *core.PixelBuffer) error {
	canvas, err := w.compose(before, after)
	if err != nil {
		return err
	}
	defer canvas.Close()

	window := gocv.NewWindow("Original vs " + title)
	defer window.Close()

	window.IMShow(canvas)
	window.WaitKey(w.waitMs)
	return nil
}

// compose places both images on a black canvas, scaled to fit.
func (w *Window) compose(before, after *core.PixelBuffer) (gocv.Mat, error) {
	left, err := BufferToMat(before)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer left.Close()

	right, err := BufferToMat(after)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer right.Close()

	scale := FitScale(image.Pt(left.Cols(), left.Rows()), image.Pt(right.Cols(), right.Rows()),
		w.maxWidth, w.maxHeight)
	leftSize := scaledSize(image.Pt(left.Cols(), left.Rows()), scale)
	rightSize := scaledSize(image.Pt(right.Cols(), right.Rows()), scale)

	shownLeft, shownRight := left, right
	if scale < 1 {
		shownLeft = resized(left, leftSize)
		defer shownLeft.Close()
		shownRight = resized(right, rightSize)
		defer shownRight.Close()
	}

	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0),
		max(leftSize.Y, rightSize.Y), leftSize.X+rightSize.X, gocv.MatTypeCV8UC3)

	leftROI := canvas.Region(image.Rect(0, 0, leftSize.X, leftSize.Y))
	shownLeft.CopyTo(&leftROI)
	leftROI.Close()

	rightROI := canvas.Region(image.Rect(leftSize.X, 0, leftSize.X+rightSize.X, rightSize.Y))
	shownRight.CopyTo(&rightROI)
	rightROI.Close()

	return canvas, nil
}

func resized(src gocv.Mat, size image.Point) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Resize(src, &dst, size, 0, 0, gocv.InterpolationArea)
	return dst
}
