package visibility

// Rect is an element's bounding box relative to the viewport's top-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Top returns the top edge (y for positive height, y + height for negative).
func (rect Rect) Top() float64 {
	if rect.Height < 0 {
		return rect.Y + rect.Height
	}
	return rect.Y
}

// Bottom returns the bottom edge.
func (rect Rect) Bottom() float64 {
	if rect.Height < 0 {
		return rect.Y
	}
	return rect.Y + rect.Height
}

// Left returns the left edge.
func (rect Rect) Left() float64 {
	if rect.Width < 0 {
		return rect.X + rect.Width
	}
	return rect.X
}

// Right returns the right edge.
func (rect Rect) Right() float64 {
	if rect.Width < 0 {
		return rect.X
	}
	return rect.X + rect.Width
}

// Span returns the absolute height of the rectangle.
func (rect Rect) Span() float64 {
	return rect.Bottom() - rect.Top()
}

// Viewport describes the visible window onto a scrolled document.
type Viewport struct {
	ScrollX float64
	ScrollY float64
	Width   float64
	Height  float64
}

// Element is anything that can report where it currently sits on screen.
type Element interface {
	// Bounds returns the client rectangle, or false when the element is detached.
	Bounds() (Rect, bool)
}

// ViewportSource reports the current viewport geometry.
type ViewportSource interface {
	Viewport() Viewport
}

// ViewportFunc adapts a function to ViewportSource.
type ViewportFunc func() Viewport

func (fn ViewportFunc) Viewport() Viewport { return fn() }

// StaticElement is an element with fixed bounds.
type StaticElement Rect

func (element StaticElement) Bounds() (Rect, bool) { return Rect(element), true }
