package visibility

// Probe answers whether the referenced element is sufficiently visible right now.
type Probe struct {
	ref       ElementRef
	viewport  ViewportSource
	strategy  IntersectionStrategy
	threshold float64
}

// NewProbe creates a probe. A nil strategy selects Overlap with the default policy.
func NewProbe(ref ElementRef, viewport ViewportSource, strategy IntersectionStrategy, threshold float64) *Probe {
	if strategy == nil {
		strategy = Overlap{}
	}
	return &Probe{
		ref:       ref,
		viewport:  viewport,
		strategy:  strategy,
		threshold: threshold,
	}
}

// Fraction resolves the element and returns its visible fraction, or false when
// there is nothing measurable (no element, detached, or zero height).
func (probe *Probe) Fraction() (float64, bool) {
	element := probe.ref.Resolve()
	if element == nil || probe.viewport == nil {
		return 0, false
	}
	bounds, attached := element.Bounds()
	if !attached || bounds.Span() <= 0 {
		return 0, false
	}
	return probe.strategy.Fraction(bounds, probe.viewport.Viewport()), true
}

// OnScreen reports whether the visible fraction reaches the threshold.
func (probe *Probe) OnScreen() bool {
	fraction, ok := probe.Fraction()
	if !ok {
		return false
	}
	return fraction >= probe.threshold
}
