package visibility

import (
	"testing"

	"screentimer/internal/core/model"

	"github.com/stretchr/testify/assert"
)

var screen = Viewport{ScrollY: 400, Width: 800, Height: 600}

func TestOverlap_Fraction(t *testing.T) {
	cases := []struct {
		name    string
		element Rect
		want    float64
	}{
		{"fully inside", Rect{Y: 100, Width: 200, Height: 200}, 1},
		{"entirely above", Rect{Y: -300, Width: 200, Height: 200}, 0},
		{"entirely below", Rect{Y: 700, Width: 200, Height: 200}, 0},
		{"touching bottom edge", Rect{Y: 600, Width: 200, Height: 100}, 0},
		{"half above", Rect{Y: -100, Width: 200, Height: 200}, 0.5},
		{"quarter below", Rect{Y: 450, Width: 200, Height: 200}, 0.75},
		{"taller than viewport", Rect{Y: -200, Width: 200, Height: 1200}, 0.5},
		{"zero height", Rect{Y: 100, Width: 200}, 0},
		{"negative height", Rect{Y: 300, Width: 200, Height: -200}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Overlap{}.Fraction(tc.element, screen), 1e-9)
		})
	}
}

func TestOverlap_OversizePolicies(t *testing.T) {
	spanning := Rect{Y: -300, Height: 1200}

	elementHeight := Overlap{Policy: model.OversizeElementHeight}.Fraction(spanning, screen)
	assert.InDelta(t, 0.5, elementHeight, 1e-9)

	viewportHeight := Overlap{Policy: model.OversizeViewportHeight}.Fraction(spanning, screen)
	assert.Equal(t, 1.0, viewportHeight)

	// Policy B only applies when the element is taller than the viewport.
	small := Rect{Y: -100, Height: 200}
	assert.InDelta(t, 0.5, Overlap{Policy: model.OversizeViewportHeight}.Fraction(small, screen), 1e-9)
}

func TestFullyInside_Fraction(t *testing.T) {
	assert.Equal(t, 1.0, FullyInside{}.Fraction(Rect{Y: 0, Height: 600}, screen))
	assert.Equal(t, 0.0, FullyInside{}.Fraction(Rect{Y: -1, Height: 100}, screen))
	assert.Equal(t, 0.0, FullyInside{}.Fraction(Rect{Y: 550, Height: 100}, screen))
}

func TestEntryRatio_Fraction(t *testing.T) {
	assert.Equal(t, 0.0, EntryRatio{}.Fraction(Rect{Y: 600, Height: 100}, screen))
	assert.InDelta(t, 0.5, EntryRatio{}.Fraction(Rect{Y: 300, Height: 100}, screen), 1e-9)
	assert.Equal(t, 1.0, EntryRatio{}.Fraction(Rect{Y: -50, Height: 100}, screen))
	assert.Equal(t, 0.0, EntryRatio{}.Fraction(Rect{Y: -200, Height: 100}, screen))
}

func TestBand_Fraction(t *testing.T) {
	band := Band{Top: 0.25, Bottom: 0.75}
	assert.Equal(t, 1.0, band.Fraction(Rect{Y: 250, Height: 100}, screen))
	assert.Equal(t, 0.0, band.Fraction(Rect{Y: 0, Height: 100}, screen))
	assert.Equal(t, 0.0, band.Fraction(Rect{Y: 500, Height: 100}, screen))
}

func TestStrategyFor_UsesConfiguredPolicy(t *testing.T) {
	config := model.DefaultTimerConfig()
	config.Oversize = model.OversizeViewportHeight
	assert.Equal(t, Overlap{Policy: model.OversizeViewportHeight}, StrategyFor(config))
}

func TestStrategyFor_SelectsNamedStrategy(t *testing.T) {
	cases := map[model.Strategy]IntersectionStrategy{
		model.StrategyOverlap:     Overlap{Policy: model.OversizeElementHeight},
		model.StrategyFullyInside: FullyInside{},
		model.StrategyEntryRatio:  EntryRatio{},
		model.StrategyCentreBand:  CentreBand,
		"":                        Overlap{Policy: model.OversizeElementHeight},
	}
	for name, want := range cases {
		config := model.DefaultTimerConfig()
		config.Strategy = name
		assert.Equal(t, want, StrategyFor(config), "strategy %q", name)
	}
}
