// Image loading and saving on top of OpenCV
package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-transform-editor/internal/core"
)

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

// SupportedExtensions lists the file extensions accepted for load and save.
func SupportedExtensions() []string {
	out := make([]string, len(supportedFormats))
	copy(out, supportedFormats)
	return out
}

// IsSupported reports whether the path carries a known image extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

// Loader decodes image files into RGB pixel buffers.
type Loader struct {
	logger logrus.FieldLogger
}

func NewLoader(logger logrus.FieldLogger) *Loader {
	return &Loader{logger: logger}
}

// LoadImage reads a color image and normalizes it to 8-bit RGB.
func (l *Loader) LoadImage(path string) (*core.PixelBuffer, error) {
	l.logger.WithField("filepath", path).Debug("Loading image")

	if !IsSupported(path) {
		return nil, fmt.Errorf("%w: unsupported image format: %s", core.ErrInvalidSource, path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return nil, fmt.Errorf("%w: failed to load image: %s", core.ErrInvalidSource, path)
	}

	buf, err := MatToBuffer(mat)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrInvalidSource, path, err)
	}

	l.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    buf.Width(),
		"height":   buf.Height(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return buf, nil
}

// MatToBuffer converts a 3-channel BGR Mat into an RGB buffer.
func MatToBuffer(mat gocv.Mat) (*core.PixelBuffer, error) {
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("expected 8-bit 3-channel image, got %v", mat.Type())
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	if err := gocv.CvtColor(mat, &rgb, gocv.ColorBGRToRGB); err != nil {
		return nil, fmt.Errorf("color conversion failed: %w", err)
	}

	buf, err := core.WrapRGB(rgb.Cols(), rgb.Rows(), rgb.ToBytes())
	if err != nil {
		return nil, err
	}
	if err := core.ValidateImage(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// BufferToMat converts an RGB buffer into a BGR Mat owned by the caller.
func BufferToMat(buf *core.PixelBuffer) (gocv.Mat, error) {
	if err := buf.Validate(); err != nil {
		return gocv.NewMat(), err
	}

	rgb, err := gocv.NewMatFromBytes(buf.Height(), buf.Width(), gocv.MatTypeCV8UC3, buf.Pix())
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("create mat: %w", err)
	}
	defer rgb.Close()

	bgr := gocv.NewMat()
	if err := gocv.CvtColor(rgb, &bgr, gocv.ColorRGBToBGR); err != nil {
		bgr.Close()
		return gocv.NewMat(), fmt.Errorf("color conversion failed: %w", err)
	}
	return bgr, nil
}
