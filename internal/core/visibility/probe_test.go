package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type detachedElement struct{}

func (detachedElement) Bounds() (Rect, bool) { return Rect{}, false }

func fixedViewport(viewport Viewport) ViewportSource {
	return ViewportFunc(func() Viewport { return viewport })
}

func TestProbe_ThresholdIsInclusive(t *testing.T) {
	half := StaticElement{Y: -50, Height: 100}
	probe := NewProbe(Direct(half), fixedViewport(Viewport{Height: 600}), nil, 0.5)
	assert.True(t, probe.OnScreen())

	stricter := NewProbe(Direct(half), fixedViewport(Viewport{Height: 600}), nil, 0.51)
	assert.False(t, stricter.OnScreen())
}

func TestProbe_ResolverIsCalledEverySample(t *testing.T) {
	calls := 0
	var current Element
	probe := NewProbe(Resolver(func() Element {
		calls++
		return current
	}), fixedViewport(Viewport{Height: 600}), nil, 0.5)

	assert.False(t, probe.OnScreen(), "nil resolution is not visible")

	current = StaticElement{Y: 10, Height: 100}
	assert.True(t, probe.OnScreen())

	current = StaticElement{Y: 900, Height: 100}
	assert.False(t, probe.OnScreen())
	assert.Equal(t, 3, calls)
}

func TestProbe_DetachedAndZeroHeightAreNotVisible(t *testing.T) {
	viewport := fixedViewport(Viewport{Height: 600})

	assert.False(t, NewProbe(Direct(detachedElement{}), viewport, nil, 0).OnScreen())
	assert.False(t, NewProbe(Direct(StaticElement{Y: 10}), viewport, nil, 0).OnScreen())
}

func TestProbe_CustomStrategy(t *testing.T) {
	always := StrategyFunc(func(Rect, Viewport) float64 { return 0.3 })
	probe := NewProbe(Direct(StaticElement{Height: 10}), fixedViewport(Viewport{Height: 600}), always, 0.3)

	fraction, ok := probe.Fraction()
	assert.True(t, ok)
	assert.Equal(t, 0.3, fraction)
	assert.True(t, probe.OnScreen())
}

func TestElementRef_Validity(t *testing.T) {
	assert.False(t, ElementRef{}.Valid())
	assert.False(t, Direct(nil).Valid())
	assert.True(t, Direct(StaticElement{}).Valid())

	lazy := Resolver(func() Element { return nil })
	assert.True(t, lazy.Valid())
	assert.True(t, lazy.Lazy())
	assert.Nil(t, lazy.Resolve())
}
