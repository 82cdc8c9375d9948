package visibility

import "screentimer/internal/core/model"

// IntersectionStrategy maps element and viewport geometry to a visible fraction in [0,1].
type IntersectionStrategy interface {
	Fraction(element Rect, viewport Viewport) float64
}

// StrategyFunc adapts a function to IntersectionStrategy.
type StrategyFunc func(element Rect, viewport Viewport) float64

func (fn StrategyFunc) Fraction(element Rect, viewport Viewport) float64 {
	return fn(element, viewport)
}

// Overlap is the canonical strategy: vertical overlap with the viewport band
// divided by the element height.
type Overlap struct {
	Policy model.OversizePolicy
}

// CentreBand is the band used by model.StrategyCentreBand: the middle half of the viewport.
var CentreBand = Band{Top: 0.25, Bottom: 0.75}

// StrategyFor returns the strategy named by config. Unknown or empty names fall
// back to Overlap with the configured policy.
func StrategyFor(config model.TimerConfig) IntersectionStrategy {
	switch config.Strategy {
	case model.StrategyFullyInside:
		return FullyInside{}
	case model.StrategyEntryRatio:
		return EntryRatio{}
	case model.StrategyCentreBand:
		return CentreBand
	default:
		return Overlap{Policy: config.Oversize}
	}
}

func (strategy Overlap) Fraction(element Rect, viewport Viewport) float64 {
	height := element.Span()
	if height <= 0 {
		return 0
	}

	// Document coordinates.
	elementTop := element.Top() + viewport.ScrollY
	elementBottom := elementTop + height
	bandTop := viewport.ScrollY
	bandBottom := viewport.ScrollY + viewport.Height

	if elementBottom <= bandTop || elementTop >= bandBottom {
		return 0
	}

	overlap := min(elementBottom, bandBottom) - max(elementTop, bandTop)
	denominator := height
	if strategy.Policy == model.OversizeViewportHeight && viewport.Height > 0 && height > viewport.Height {
		denominator = viewport.Height
	}
	return clamp(overlap / denominator)
}

// FullyInside counts an element only when it lies entirely within the viewport band.
type FullyInside struct{}

func (FullyInside) Fraction(element Rect, viewport Viewport) float64 {
	if element.Span() <= 0 {
		return 0
	}
	if element.Top() >= 0 && element.Bottom() <= viewport.Height {
		return 1
	}
	return 0
}

// EntryRatio measures how far the element's top edge has travelled into the
// viewport, relative to the viewport height.
type EntryRatio struct{}

func (EntryRatio) Fraction(element Rect, viewport Viewport) float64 {
	if viewport.Height <= 0 || element.Span() <= 0 {
		return 0
	}
	if element.Bottom() <= 0 || element.Top() >= viewport.Height {
		return 0
	}
	return clamp((viewport.Height - element.Top()) / viewport.Height)
}

// Band counts an element when its vertical centre falls within a fixed range of
// the viewport, expressed as fractions of the viewport height.
type Band struct {
	Top    float64
	Bottom float64
}

func (band Band) Fraction(element Rect, viewport Viewport) float64 {
	if viewport.Height <= 0 || element.Span() <= 0 {
		return 0
	}
	centre := element.Top() + element.Span()/2
	if centre >= band.Top*viewport.Height && centre <= band.Bottom*viewport.Height {
		return 1
	}
	return 0
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
