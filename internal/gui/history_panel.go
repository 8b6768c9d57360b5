package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"image-transform-editor/internal/history"
)

// HistoryPanel lists the steps of the current session, oldest first
type HistoryPanel struct {
	card    *widget.Card
	list    *widget.List
	entries []history.Entry
}

func NewHistoryPanel() *HistoryPanel {
	hp := &HistoryPanel{}

	hp.list = widget.NewList(
		func() int {
			return len(hp.entries)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabel("#"),
				widget.NewLabel("Step"),
				widget.NewLabel("Size"),
			)
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id >= len(hp.entries) {
				return
			}
			entry := hp.entries[id]
			hbox := item.(*fyne.Container)
			hbox.Objects[0].(*widget.Label).SetText(fmt.Sprintf("%d.", id))
			hbox.Objects[1].(*widget.Label).SetText(entry.Label())
			hbox.Objects[2].(*widget.Label).SetText(entry.Buffer.String())
		},
	)

	hp.card = widget.NewCard("🕘 History", "No image loaded", hp.list)
	return hp
}

func (hp *HistoryPanel) GetContainer() fyne.CanvasObject {
	return hp.card
}

func (hp *HistoryPanel) Update(entries []history.Entry) {
	hp.entries = entries
	hp.card.SetSubTitle(fmt.Sprintf("%d step(s) applied", len(entries)-1))
	hp.list.Refresh()
	if len(entries) > 0 {
		hp.list.ScrollToBottom()
	}
}

// Len is the number of listed entries including the original.
func (hp *HistoryPanel) Len() int {
	return len(hp.entries)
}
