package visibility

// ElementRef points at the tracked element either directly or through a resolver
// that is called again on every sample, so the element may be swapped or unmounted.
type ElementRef struct {
	direct  Element
	resolve func() Element
}

// Direct wraps an element handle.
func Direct(element Element) ElementRef {
	return ElementRef{direct: element}
}

// Resolver wraps a function producing the element on demand.
func Resolver(resolve func() Element) ElementRef {
	return ElementRef{resolve: resolve}
}

// Lazy reports whether the reference is resolved through a function.
func (ref ElementRef) Lazy() bool {
	return ref.resolve != nil
}

// Valid reports whether the reference was supplied at all. A resolver counts as
// valid regardless of what it will produce.
func (ref ElementRef) Valid() bool {
	return ref.resolve != nil || ref.direct != nil
}

// Resolve returns the current element, or nil.
func (ref ElementRef) Resolve() Element {
	if ref.resolve != nil {
		return ref.resolve()
	}
	return ref.direct
}
