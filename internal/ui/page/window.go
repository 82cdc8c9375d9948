package page

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Content holds the article text placed above and below the tracked card.
type Content struct {
	Lead string
	Tail string
}

const cardHeight = float32(220)

// Window is the scrollable demo page holding the tracked card.
type Window struct {
	window    fyne.Window
	scroll    *container.Scroll
	body      *fyne.Container
	card      *fyne.Container
	cardIndex int
	mounted   bool
	hud       *widget.Label
	status    *widget.Label
	toggle    *widget.Button
	onToggle  func(mounted bool)
}

// New builds the page window. It is not shown until Show is called.
func New(app fyne.App, content Content) *Window {
	window := app.NewWindow("Screen Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	lead := widget.NewRichTextFromMarkdown(content.Lead)
	lead.Wrapping = fyne.TextWrapWord
	tail := widget.NewRichTextFromMarkdown(content.Tail)
	tail.Wrapping = fyne.TextWrapWord

	background := canvas.NewRectangle(color.NRGBA{R: 30, G: 136, B: 229, A: 255})
	background.CornerRadius = 8
	background.SetMinSize(fyne.NewSize(0, cardHeight))
	cardTitle := canvas.NewText("Tracked card", color.White)
	cardTitle.TextStyle = fyne.TextStyle{Bold: true}
	cardTitle.TextSize = 20
	cardTitle.Alignment = fyne.TextAlignCenter
	card := container.NewStack(background, container.NewCenter(cardTitle))

	body := container.NewVBox(lead, card, tail)
	scroll := container.NewVScroll(body)

	page := &Window{
		window:    window,
		scroll:    scroll,
		body:      body,
		card:      card,
		cardIndex: 1,
		mounted:   true,
		hud:       widget.NewLabel(formatVisible(0, 0)),
		status:    widget.NewLabel("running"),
	}
	page.toggle = widget.NewButton("Remove card", page.ToggleCard)

	header := container.NewHBox(page.hud, layout.NewSpacer(), page.status, page.toggle)
	window.SetContent(container.NewBorder(header, nil, nil, nil, scroll))
	window.Resize(fyne.NewSize(640, 520))
	return page
}

// Window returns the underlying fyne window.
func (page *Window) Window() fyne.Window {
	return page.window
}

// Scroll returns the scroll container acting as the viewport.
func (page *Window) Scroll() *container.Scroll {
	return page.scroll
}

// Card returns the tracked card, or nil while it is removed from the page.
func (page *Window) Card() fyne.CanvasObject {
	if !page.mounted {
		return nil
	}
	return page.card
}

// Mounted reports whether the card is currently part of the page.
func (page *Window) Mounted() bool {
	return page.mounted
}

// SetOnToggle registers a handler called after the card is removed or restored.
func (page *Window) SetOnToggle(handler func(mounted bool)) {
	page.onToggle = handler
}

// ToggleCard removes the card from the page or puts it back in its original slot.
func (page *Window) ToggleCard() {
	if page.mounted {
		page.body.Remove(page.card)
		page.mounted = false
		page.toggle.SetText("Restore card")
	} else {
		objects := make([]fyne.CanvasObject, 0, len(page.body.Objects)+1)
		objects = append(objects, page.body.Objects[:page.cardIndex]...)
		objects = append(objects, page.card)
		objects = append(objects, page.body.Objects[page.cardIndex:]...)
		page.body.Objects = objects
		page.body.Refresh()
		page.mounted = true
		page.toggle.SetText("Remove card")
	}
	if page.onToggle != nil {
		page.onToggle(page.mounted)
	}
}

// SetVisible shows the accumulated on-screen time and the number of reports.
func (page *Window) SetVisible(total time.Duration, reports int) {
	page.hud.SetText(formatVisible(total, reports))
}

// SetStatus updates the status label in the header.
func (page *Window) SetStatus(status string) {
	page.status.SetText(status)
}

// HUD returns the text of the visible-time label.
func (page *Window) HUD() string {
	return page.hud.Text
}

// Show displays the page.
func (page *Window) Show() {
	page.window.Show()
}

func formatVisible(total time.Duration, reports int) string {
	return fmt.Sprintf("Visible %s in %d reports", total.Round(time.Second), reports)
}
