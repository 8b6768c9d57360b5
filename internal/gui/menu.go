// Menu and file dialogs
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	imgio "image-transform-editor/internal/io"
)

// MenuCallbacks receive the paths chosen in the file dialogs and the edit
// menu actions.
type MenuCallbacks struct {
	OnOpen    func(path string)
	OnSave    func(path string)
	OnUndo    func()
	OnRestore func()
}

// MenuHandler handles menu actions
type MenuHandler struct {
	window           fyne.Window
	defaultExtension string
	logger           logrus.FieldLogger
	hasImage         bool

	callbacks MenuCallbacks
}

func NewMenuHandler(window fyne.Window, defaultExtension string, logger logrus.FieldLogger) *MenuHandler {
	return &MenuHandler{
		window:           window,
		defaultExtension: defaultExtension,
		logger:           logger,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.openImage),
		fyne.NewMenuItem("Save Image...", mh.saveImage),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			if mh.callbacks.OnUndo != nil {
				mh.callbacks.OnUndo()
			}
		}),
		fyne.NewMenuItem("Restore Original", func() {
			if mh.callbacks.OnRestore != nil {
				mh.callbacks.OnRestore()
			}
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

func (mh *MenuHandler) SetHasImage(hasImage bool) {
	mh.hasImage = hasImage
}

func (mh *MenuHandler) openImage() {
	mh.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		mh.logger.WithField("filepath", path).Info("Loading selected image")
		if mh.callbacks.OnOpen != nil {
			mh.callbacks.OnOpen(path)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(imgio.SupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) saveImage() {
	if !mh.hasImage {
		dialog.ShowInformation("No Image", "Load an image before saving.", mh.window)
		return
	}

	mh.logger.Info("Opening file dialog for image saving")

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		// The encoder writes the file itself.
		writer.Close()

		if mh.callbacks.OnSave != nil {
			mh.callbacks.OnSave(path)
		}
	}, mh.window)

	fileDialog.SetFileName("transformed" + mh.defaultExtension)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(imgio.SupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Image Transform Editor"),
		widget.NewSeparator(),
		widget.NewLabel("Rotate, scale, flip and translate images"),
		widget.NewLabel("with unlimited undo back to the original."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 250))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithField("error", err).Error(title)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(callbacks MenuCallbacks) {
	mh.callbacks = callbacks
}
