package fynehost

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"screentimer/internal/core/visibility"
)

// ScrollViewport exposes a scroll container as the viewport onto its content.
type ScrollViewport struct {
	scroll *container.Scroll
}

// NewScrollViewport wraps scroll.
func NewScrollViewport(scroll *container.Scroll) *ScrollViewport {
	return &ScrollViewport{scroll: scroll}
}

// Viewport returns the scroll offset and the visible size.
func (viewport *ScrollViewport) Viewport() visibility.Viewport {
	size := viewport.scroll.Size()
	return visibility.Viewport{
		ScrollX: float64(viewport.scroll.Offset.X),
		ScrollY: float64(viewport.scroll.Offset.Y),
		Width:   float64(size.Width),
		Height:  float64(size.Height),
	}
}

// Element returns an element handle for object placed somewhere inside the scroll content.
func (viewport *ScrollViewport) Element(object fyne.CanvasObject) *ObjectElement {
	return &ObjectElement{scroll: viewport.scroll, object: object}
}

// ObjectElement measures a canvas object relative to the scroll viewport.
type ObjectElement struct {
	scroll *container.Scroll
	object fyne.CanvasObject
}

// Bounds walks the content tree to locate the object. An object that has been
// removed from the tree, or hidden, is reported as detached.
func (element *ObjectElement) Bounds() (visibility.Rect, bool) {
	if element.object == nil || !element.object.Visible() {
		return visibility.Rect{}, false
	}
	position, found := positionWithin(element.scroll.Content, element.object)
	if !found {
		return visibility.Rect{}, false
	}
	size := element.object.Size()
	offset := element.scroll.Offset
	return visibility.Rect{
		X:      float64(position.X - offset.X),
		Y:      float64(position.Y - offset.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}, true
}

// positionWithin returns target's position in root's coordinate space.
func positionWithin(root, target fyne.CanvasObject) (fyne.Position, bool) {
	if root == nil {
		return fyne.Position{}, false
	}
	if root == target {
		return fyne.NewPos(0, 0), true
	}
	parent, ok := root.(*fyne.Container)
	if !ok || !parent.Visible() {
		return fyne.Position{}, false
	}
	for _, child := range parent.Objects {
		if child == target {
			return child.Position(), true
		}
		if inner, found := positionWithin(child, target); found {
			return child.Position().Add(inner), true
		}
	}
	return fyne.Position{}, false
}
