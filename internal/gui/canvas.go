// Image views and comparison metrics
package gui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-transform-editor/internal/core"
	"image-transform-editor/internal/metrics"
)

// ImageCanvas shows the original and the transformed image side by side
type ImageCanvas struct {
	logger logrus.FieldLogger

	split           *container.Split
	originalView    *widget.Card
	transformedView *widget.Card
	originalImage   *canvas.Image
	currentImage    *canvas.Image
}

func NewImageCanvas(logger logrus.FieldLogger) *ImageCanvas {
	ic := &ImageCanvas{logger: logger}
	ic.initializeUI()
	return ic
}

func newPlaceholder() *canvas.Image {
	placeholderImg := image.NewRGBA(image.Rect(0, 0, 200, 150))
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			placeholderImg.Set(x, y, color.RGBA{240, 240, 240, 255})
		}
	}
	return newImageView(placeholderImg)
}

func newImageView(img image.Image) *canvas.Image {
	view := canvas.NewImageFromImage(img)
	view.FillMode = canvas.ImageFillContain
	view.ScaleMode = canvas.ImageScalePixels
	view.SetMinSize(fyne.NewSize(200, 150))
	return view
}

func (ic *ImageCanvas) initializeUI() {
	ic.originalImage = newPlaceholder()
	ic.currentImage = newPlaceholder()

	ic.originalView = widget.NewCard("Original", "", ic.originalImage)
	ic.transformedView = widget.NewCard("Transformed", "", ic.currentImage)

	ic.split = container.NewHSplit(ic.originalView, ic.transformedView)
	ic.split.SetOffset(0.5)
}

func (ic *ImageCanvas) GetContainer() fyne.CanvasObject {
	return ic.split
}

// Update replaces both views. The subtitles carry the image dimensions.
func (ic *ImageCanvas) Update(original, current *core.PixelBuffer) {
	ic.originalImage = newImageView(original.ToImage())
	ic.currentImage = newImageView(current.ToImage())

	ic.originalView.SetContent(ic.originalImage)
	ic.originalView.SetSubTitle(fmt.Sprintf("%d x %d", original.Width(), original.Height()))
	ic.transformedView.SetContent(ic.currentImage)
	ic.transformedView.SetSubTitle(fmt.Sprintf("%d x %d", current.Width(), current.Height()))

	ic.logger.WithFields(logrus.Fields{
		"original": original.String(),
		"current":  current.String(),
	}).Debug("Updated image views")
}

// MetricsPanel displays how the latest step changed the image
type MetricsPanel struct {
	vbox *fyne.Container
}

func NewMetricsPanel() *MetricsPanel {
	panel := &MetricsPanel{}
	panel.initializeUI()
	return panel
}

func (mp *MetricsPanel) initializeUI() {
	mp.vbox = container.NewVBox()
	mp.Clear()
}

func (mp *MetricsPanel) GetContainer() fyne.CanvasObject {
	return mp.vbox
}

func (mp *MetricsPanel) Update(c metrics.Comparison) {
	content := container.NewVBox()

	switch {
	case !c.SameSize:
		content.Add(widget.NewLabel(fmt.Sprintf("📐 Size: %s → %s", c.BeforeSize, c.AfterSize)))
	case c.Identical:
		content.Add(widget.NewLabel("✅ Identical images"))
	default:
		names := make([]string, 0, len(c.Metrics))
		for name := range c.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			content.Add(widget.NewLabel(formatMetric(name, c.Metrics[name])))
		}
	}

	mp.vbox.RemoveAll()
	mp.vbox.Add(widget.NewCard("📊 Last Change", "", content))
}

func formatMetric(name string, value float64) string {
	switch name {
	case "psnr":
		if math.IsInf(value, 1) {
			return "📡 PSNR: ∞"
		}
		return fmt.Sprintf("📡 PSNR: %.2f dB", value)
	case "mse":
		return fmt.Sprintf("📊 MSE: %.2f", value)
	case "mae":
		return fmt.Sprintf("📊 MAE: %.2f", value)
	case "changed":
		return fmt.Sprintf("🔄 Changed pixels: %.1f%%", value*100)
	default:
		return fmt.Sprintf("📈 %s: %.3f", name, value)
	}
}

func (mp *MetricsPanel) Clear() {
	mp.vbox.RemoveAll()
	mp.vbox.Add(widget.NewCard("📊 Last Change", "",
		widget.NewLabel("Comparison metrics appear here after each edit.")))
}
