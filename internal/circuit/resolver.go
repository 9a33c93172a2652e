package circuit

import "sort"

// ParameterResolver maps parameter names to values and records which names
// require gradients. The simulator consumes it read-only.
type ParameterResolver struct {
	values map[string]float64
	noGrad map[string]struct{}
}

// NewParameterResolver builds a resolver from a name to value map. Every
// parameter requires a gradient until marked otherwise.
func NewParameterResolver(values map[string]float64) *ParameterResolver {
	pr := &ParameterResolver{
		values: make(map[string]float64, len(values)),
		noGrad: make(map[string]struct{}),
	}
	for name, v := range values {
		pr.values[name] = v
	}
	return pr
}

// Value returns the value bound to name, or 0 when unbound.
func (p *ParameterResolver) Value(name string) float64 {
	return p.values[name]
}

// Has reports whether name is bound.
func (p *ParameterResolver) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// RequiresGrad reports whether name participates in gradient computation.
func (p *ParameterResolver) RequiresGrad(name string) bool {
	if _, ok := p.values[name]; !ok {
		return false
	}
	_, off := p.noGrad[name]
	return !off
}

// MarkNoGrad excludes name from gradient computation.
func (p *ParameterResolver) MarkNoGrad(name string) {
	p.noGrad[name] = struct{}{}
}

// Names returns the bound parameter names in sorted order.
func (p *ParameterResolver) Names() []string {
	names := make([]string, 0, len(p.values))
	for name := range p.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GradSlots assigns a dense gradient slot index to every trainable
// parameter, in sorted name order.
func (p *ParameterResolver) GradSlots() map[string]int {
	slots := make(map[string]int)
	for _, name := range p.Names() {
		if p.RequiresGrad(name) {
			slots[name] = len(slots)
		}
	}
	return slots
}
