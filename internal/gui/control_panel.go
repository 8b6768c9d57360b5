// Transform selection with per-transform parameter fields
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-transform-editor/internal/algorithms"
)

// ControlCallbacks connects the panel buttons to the editor.
type ControlCallbacks struct {
	OnLoad    func()
	OnApply   func(name string, raw []string)
	OnUndo    func()
	OnRestore func()
	OnSave    func()
}

// paramField reads the text of one parameter widget.
type paramField struct {
	info algorithms.ParameterInfo
	text func() string
}

type ControlPanel struct {
	logger logrus.FieldLogger

	container       *fyne.Container
	transformSelect *widget.Select
	paramContainer  *fyne.Container
	fields          []paramField

	loadBtn    *widget.Button
	applyBtn   *widget.Button
	undoBtn    *widget.Button
	restoreBtn *widget.Button
	saveBtn    *widget.Button

	// label -> registry name
	labels           map[string]string
	currentTransform string
	callbacks        ControlCallbacks
}

func NewControlPanel(logger logrus.FieldLogger) *ControlPanel {
	panel := &ControlPanel{
		logger: logger,
		labels: make(map[string]string),
	}
	panel.initializeUI()
	return panel
}

func (cp *ControlPanel) initializeUI() {
	var options []string
	all := algorithms.GetAllAlgorithms()
	for _, name := range algorithms.Names() {
		label := all[name].GetLabel()
		cp.labels[label] = name
		options = append(options, label)
	}

	cp.paramContainer = container.NewVBox()
	cp.transformSelect = widget.NewSelect(options, cp.onTransformSelected)
	cp.transformSelect.PlaceHolder = "Choose a transform..."

	cp.loadBtn = widget.NewButtonWithIcon("Load Image", theme.FolderOpenIcon(), func() { cp.call(cp.callbacks.OnLoad) })
	cp.loadBtn.Importance = widget.HighImportance

	cp.applyBtn = widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), cp.apply)
	cp.applyBtn.Importance = widget.HighImportance
	cp.undoBtn = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), func() { cp.call(cp.callbacks.OnUndo) })
	cp.restoreBtn = widget.NewButtonWithIcon("Restore Original", theme.ViewRefreshIcon(), func() { cp.call(cp.callbacks.OnRestore) })
	cp.restoreBtn.Importance = widget.DangerImportance
	cp.saveBtn = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() { cp.call(cp.callbacks.OnSave) })

	transformCard := widget.NewCard("🔧 Transform", "",
		container.NewVBox(
			cp.transformSelect,
			widget.NewSeparator(),
			cp.paramContainer,
			cp.applyBtn,
		))

	historyCard := widget.NewCard("🕘 History", "",
		container.NewVBox(cp.undoBtn, cp.restoreBtn))

	cp.container = container.NewVBox(
		cp.loadBtn,
		widget.NewSeparator(),
		transformCard,
		historyCard,
		cp.saveBtn,
	)

	cp.transformSelect.SetSelected(options[0])
	cp.Disable()
}

func (cp *ControlPanel) call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (cp *ControlPanel) onTransformSelected(label string) {
	name, ok := cp.labels[label]
	if !ok {
		return
	}
	cp.currentTransform = name
	cp.createParameterWidgets(name)
}

// createParameterWidgets shows only the fields the selected transform takes.
func (cp *ControlPanel) createParameterWidgets(name string) {
	algorithm, exists := algorithms.Get(name)
	if !exists {
		cp.logger.WithField("transform", name).Error("Transform not found")
		return
	}

	cp.paramContainer.RemoveAll()
	cp.fields = cp.fields[:0]

	cp.paramContainer.Add(widget.NewLabel(fmt.Sprintf("📝 %s", algorithm.GetDescription())))
	for _, param := range algorithm.GetParameterInfo() {
		cp.createParameterWidget(param)
	}
	cp.paramContainer.Refresh()
}

func (cp *ControlPanel) createParameterWidget(param algorithms.ParameterInfo) {
	cp.paramContainer.Add(widget.NewLabel(param.Description + ":"))

	switch param.Type {
	case "enum":
		selectWidget := widget.NewSelect(param.Options, nil)
		if defaultVal, ok := param.Default.(string); ok {
			selectWidget.SetSelected(defaultVal)
		}
		cp.fields = append(cp.fields, paramField{info: param, text: func() string { return selectWidget.Selected }})
		cp.paramContainer.Add(selectWidget)

	default:
		entry := widget.NewEntry()
		entry.SetText(fmt.Sprintf("%v", param.Default))
		cp.fields = append(cp.fields, paramField{info: param, text: func() string { return entry.Text }})
		cp.paramContainer.Add(entry)
	}
}

func (cp *ControlPanel) apply() {
	if cp.currentTransform == "" || cp.callbacks.OnApply == nil {
		return
	}

	raw := make([]string, len(cp.fields))
	for i, field := range cp.fields {
		raw[i] = field.text()
	}

	cp.logger.WithFields(logrus.Fields{
		"transform": cp.currentTransform,
		"values":    raw,
	}).Debug("Apply requested")
	cp.callbacks.OnApply(cp.currentTransform, raw)
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

func (cp *ControlPanel) SetCallbacks(callbacks ControlCallbacks) {
	cp.callbacks = callbacks
}

// Enable activates editing once an image is loaded.
func (cp *ControlPanel) Enable() {
	cp.transformSelect.Enable()
	cp.applyBtn.Enable()
	cp.undoBtn.Enable()
	cp.restoreBtn.Enable()
	cp.saveBtn.Enable()
}

func (cp *ControlPanel) Disable() {
	cp.transformSelect.Disable()
	cp.applyBtn.Disable()
	cp.undoBtn.Disable()
	cp.restoreBtn.Disable()
	cp.saveBtn.Disable()
}
