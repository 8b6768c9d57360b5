// Main editor window: original and transformed views, transform controls and history
package gui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-transform-editor/internal/algorithms"
	"image-transform-editor/internal/config"
	"image-transform-editor/internal/core"
	"image-transform-editor/internal/metrics"
	"image-transform-editor/internal/session"
)

// ImageLoader decodes an image file into a pixel buffer.
type ImageLoader interface {
	LoadImage(path string) (*core.PixelBuffer, error)
}

// ImageSaver writes the current image of a session to a file.
type ImageSaver interface {
	Save(sess *session.Session, path string) error
}

// Application represents the main editor window
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger
	cfg    *config.Config

	// Core components
	session   *session.Session
	filepath  string
	loader    ImageLoader
	saver     ImageSaver
	evaluator *metrics.Evaluator

	// GUI components
	canvas       *ImageCanvas
	controls     *ControlPanel
	historyPanel *HistoryPanel
	metricsPanel *MetricsPanel
	menuHandler  *MenuHandler

	statusLabel *widget.Label
	statusCard  *widget.Card
}

func NewApplication(app fyne.App, logger *logrus.Logger, cfg *config.Config, loader ImageLoader, saver ImageSaver) *Application {
	window := app.NewWindow("Image Transform Editor")
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	appInstance := &Application{
		app:       app,
		window:    window,
		logger:    logger,
		cfg:       cfg,
		loader:    loader,
		saver:     saver,
		evaluator: metrics.NewEvaluator(),
	}

	appInstance.initializeGUI()
	appInstance.setupLayout()
	appInstance.setupCallbacks()

	return appInstance
}

func (a *Application) initializeGUI() {
	a.canvas = NewImageCanvas(a.logger)
	a.controls = NewControlPanel(a.logger)
	a.historyPanel = NewHistoryPanel()
	a.metricsPanel = NewMetricsPanel()
	a.menuHandler = NewMenuHandler(a.window, a.cfg.Save.DefaultExtension, a.logger)
	a.statusLabel = widget.NewLabel("Load an image to start editing")
}

func (a *Application) setupLayout() {
	a.statusCard = widget.NewCard("📊 Status", "", a.statusLabel)

	rightPanels := container.NewVSplit(
		container.NewVBox(a.statusCard, a.metricsPanel.GetContainer()),
		a.historyPanel.GetContainer(),
	)
	rightPanels.SetOffset(0.4)

	centerAndRight := container.NewHSplit(
		container.NewPadded(a.canvas.GetContainer()),
		rightPanels,
	)
	centerAndRight.SetOffset(0.75)

	mainContent := container.NewHSplit(
		container.NewScroll(a.controls.GetContainer()),
		centerAndRight,
	)
	mainContent.SetOffset(0.25)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(mainContent)
}

func (a *Application) setupCallbacks() {
	a.controls.SetCallbacks(ControlCallbacks{
		OnLoad:    a.menuHandler.openImage,
		OnApply:   a.handleApply,
		OnUndo:    a.handleUndo,
		OnRestore: a.handleRestore,
		OnSave:    a.menuHandler.saveImage,
	})

	a.menuHandler.SetCallbacks(MenuCallbacks{
		OnOpen: func(path string) {
			if err := a.LoadImageFromPath(path); err != nil {
				a.showError("Failed to Load Image", err)
			}
		},
		OnSave: func(path string) {
			if err := a.SaveToPath(path); err != nil {
				a.showError("Failed to Save Image", err)
				return
			}
			a.showInfo("💾 Image Saved", fmt.Sprintf("Image successfully saved to:\n%s", path))
		},
		OnUndo:    a.handleUndo,
		OnRestore: a.handleRestore,
	})
}

func (a *Application) updateStatusMessage(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")
	a.window.ShowAndRun()
}

// LoadImageFromPath opens a new editing session, discarding the previous one.
func (a *Application) LoadImageFromPath(path string) error {
	buf, err := a.loader.LoadImage(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	sess, err := session.Open(buf, session.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}

	a.session = sess
	a.filepath = path
	a.window.SetTitle(fmt.Sprintf("Image Transform Editor - %s", path))

	a.controls.Enable()
	a.menuHandler.SetHasImage(true)
	a.metricsPanel.Clear()
	a.refreshViews()
	a.updateStatusMessage(fmt.Sprintf("✅ Loaded: %s (%s)", path, buf))
	return nil
}

// ApplyTransform parses user-entered values for the named transform and
// applies it to the current image.
func (a *Application) ApplyTransform(name string, raw []string) error {
	if a.session == nil {
		return core.ErrNoImage
	}

	t, err := algorithms.ParseTransform(name, raw)
	if err != nil {
		return err
	}

	before := a.session.Current()
	after, err := a.session.Apply(t)
	if err != nil {
		return err
	}

	a.refreshViews()
	a.metricsPanel.Update(a.evaluator.Compare(before, after))
	a.updateStatusMessage(fmt.Sprintf("✔️ %s: %s → %s", t, before, after))
	return nil
}

// Undo drops the last transform. The status shows how the restored image
// compares with the one it replaced.
func (a *Application) Undo() error {
	if a.session == nil {
		return core.ErrNoImage
	}

	before := a.session.Current()
	restored, err := a.session.Undo()
	if err != nil {
		return err
	}

	comparison := a.evaluator.Compare(before, restored)
	a.refreshViews()
	a.metricsPanel.Update(comparison)
	a.updateStatusMessage("↶ Undo: " + comparison.Summary())
	return nil
}

// RestoreOriginal discards the whole history.
func (a *Application) RestoreOriginal() error {
	if a.session == nil {
		return core.ErrNoImage
	}

	a.session.RestoreOriginal()
	a.refreshViews()
	a.metricsPanel.Clear()
	a.updateStatusMessage("↻ Restored to original image")
	return nil
}

func (a *Application) SaveToPath(path string) error {
	if a.session == nil {
		return core.ErrNoImage
	}
	if err := a.saver.Save(a.session, path); err != nil {
		return err
	}
	a.updateStatusMessage(fmt.Sprintf("💾 Saved: %s", path))
	return nil
}

func (a *Application) handleApply(name string, raw []string) {
	if err := a.ApplyTransform(name, raw); err != nil {
		a.showError("Transform Failed", err)
	}
}

func (a *Application) handleUndo() {
	err := a.Undo()
	if errors.Is(err, core.ErrNothingToUndo) {
		a.showInfo("Undo", "There are no transforms to undo.")
		return
	}
	if err != nil {
		a.showError("Undo Failed", err)
	}
}

func (a *Application) handleRestore() {
	if err := a.RestoreOriginal(); err != nil {
		a.showError("Restore Failed", err)
	}
}

func (a *Application) refreshViews() {
	a.canvas.Update(a.session.Original(), a.session.Current())
	a.historyPanel.Update(a.session.Entries())
}

func (a *Application) showError(title string, err error) {
	a.logger.WithField("error", err).Error(title)
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("❌ Error: %s", err.Error()))
}

func (a *Application) showInfo(title, message string) {
	a.logger.WithField("message", message).Info(title)
	dialog.ShowInformation(title, message, a.window)
}
