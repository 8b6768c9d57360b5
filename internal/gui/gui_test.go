package gui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-transform-editor/internal/config"
	"image-transform-editor/internal/core"
	"image-transform-editor/internal/session"
)

type stubLoader struct{}

func (stubLoader) LoadImage(path string) (*core.PixelBuffer, error) {
	buf, err := core.NewPixelBuffer(100, 100)
	if err != nil {
		return nil, err
	}
	s := buf.Samples()
	for i := range s {
		s[i] = uint8(i % 241)
	}
	return buf, nil
}

type stubSaver struct {
	path  string
	saved *core.PixelBuffer
}

func (s *stubSaver) Save(sess *session.Session, path string) error {
	s.path = path
	s.saved = sess.Current()
	return nil
}

func newTestApplication(t *testing.T) (*Application, *stubSaver) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	logger, _ := logtest.NewNullLogger()
	saver := &stubSaver{}
	return NewApplication(a, logger, config.Default(), stubLoader{}, saver), saver
}

func TestApplicationRequiresImage(t *testing.T) {
	editor, _ := newTestApplication(t)

	assert.ErrorIs(t, editor.ApplyTransform("rotate", []string{"90"}), core.ErrNoImage)
	assert.ErrorIs(t, editor.Undo(), core.ErrNoImage)
	assert.ErrorIs(t, editor.RestoreOriginal(), core.ErrNoImage)
	assert.ErrorIs(t, editor.SaveToPath("out.png"), core.ErrNoImage)
}

func TestApplicationEditingFlow(t *testing.T) {
	editor, saver := newTestApplication(t)

	require.NoError(t, editor.LoadImageFromPath("in.png"))
	assert.Equal(t, 1, editor.historyPanel.Len())
	assert.Contains(t, editor.statusLabel.Text, "Loaded: in.png")

	require.NoError(t, editor.ApplyTransform("rotate", []string{"90"}))
	require.NoError(t, editor.ApplyTransform("scale", []string{"2", "2"}))
	assert.Equal(t, 3, editor.historyPanel.Len())
	assert.Equal(t, 200, editor.session.Current().Width())

	err := editor.ApplyTransform("scale", []string{"abc", "1"})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "parameters must be valid numbers")
	assert.Equal(t, 3, editor.historyPanel.Len(), "failed apply leaves history alone")

	require.NoError(t, editor.Undo())
	assert.Equal(t, 100, editor.session.Current().Width())
	assert.Contains(t, editor.statusLabel.Text, "size 200x200x3 -> 100x100x3")

	require.NoError(t, editor.RestoreOriginal())
	assert.Equal(t, 1, editor.historyPanel.Len())
	assert.ErrorIs(t, editor.Undo(), core.ErrNothingToUndo)

	require.NoError(t, editor.SaveToPath("out.png"))
	assert.Equal(t, "out.png", saver.path)
	assert.True(t, saver.saved.Equal(editor.session.Original()))
}

func TestControlPanelShowsOnlyRelevantFields(t *testing.T) {
	test.NewApp()
	logger, _ := logtest.NewNullLogger()
	cp := NewControlPanel(logger)

	cp.transformSelect.SetSelected("Scale")
	assert.Len(t, cp.fields, 2)
	cp.transformSelect.SetSelected("Translate")
	assert.Len(t, cp.fields, 2)
	cp.transformSelect.SetSelected("Rotate")
	assert.Len(t, cp.fields, 1)
	cp.transformSelect.SetSelected("Flip")
	require.Len(t, cp.fields, 1)
	assert.Equal(t, "enum", cp.fields[0].info.Type)
}

func TestControlPanelApply(t *testing.T) {
	test.NewApp()
	logger, _ := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	cp := NewControlPanel(logger)

	var gotName string
	var gotRaw []string
	cp.SetCallbacks(ControlCallbacks{OnApply: func(name string, raw []string) {
		gotName, gotRaw = name, raw
	}})

	// Disabled until an image is loaded.
	test.Tap(cp.applyBtn)
	assert.Empty(t, gotName)

	cp.Enable()
	cp.transformSelect.SetSelected("Scale")
	var entries []*widget.Entry
	for _, obj := range cp.paramContainer.Objects {
		if entry, ok := obj.(*widget.Entry); ok {
			entries = append(entries, entry)
		}
	}
	require.Len(t, entries, 2)
	entries[0].SetText("2")
	entries[1].SetText("0.5")

	test.Tap(cp.applyBtn)
	assert.Equal(t, "scale", gotName)
	assert.Equal(t, []string{"2", "0.5"}, gotRaw)

	cp.transformSelect.SetSelected("Flip")
	test.Tap(cp.applyBtn)
	assert.Equal(t, "flip", gotName)
	assert.Equal(t, []string{"horizontal"}, gotRaw)
}
