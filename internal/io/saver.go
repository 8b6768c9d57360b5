package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-transform-editor/internal/core"
	"image-transform-editor/internal/session"
)

// Encoder returns an encoder for the given extension. Quality applies to
// JPEG output only.
func Encoder(ext string, quality int) (session.EncodeFunc, error) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if !IsSupported("image" + ext) {
		return nil, fmt.Errorf("%w: unsupported image format: %s", core.ErrEncodeFailure, ext)
	}

	return func(buf *core.PixelBuffer) ([]byte, error) {
		mat, err := BufferToMat(buf)
		if err != nil {
			return nil, err
		}
		defer mat.Close()

		var native *gocv.NativeByteBuffer
		switch ext {
		case ".jpg", ".jpeg":
			native, err = gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat,
				[]int{int(gocv.IMWriteJpegQuality), quality})
		default:
			native, err = gocv.IMEncode(gocv.FileExt(ext), mat)
		}
		if err != nil {
			return nil, err
		}
		defer native.Close()

		data := native.GetBytes()
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}, nil
}

// Saver writes the current image of a session to disk.
type Saver struct {
	logger  logrus.FieldLogger
	quality int
}

func NewSaver(logger logrus.FieldLogger, jpegQuality int) *Saver {
	return &Saver{logger: logger, quality: jpegQuality}
}

// Save encodes according to the path's extension and writes the file.
// Every failure is reported as core.ErrEncodeFailure.
func (s *Saver) Save(sess *session.Session, path string) error {
	s.logger.WithField("filepath", path).Debug("Saving image")

	if sess == nil {
		return fmt.Errorf("%w: %w", core.ErrEncodeFailure, core.ErrNoImage)
	}

	encode, err := Encoder(filepath.Ext(path), s.quality)
	if err != nil {
		return err
	}

	data, err := sess.Save(encode)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", core.ErrEncodeFailure, err)
	}

	current := sess.Current()
	s.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    current.Width(),
		"height":   current.Height(),
		"bytes":    len(data),
	}).Info("Image saved successfully")
	return nil
}
