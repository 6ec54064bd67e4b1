// Package graph implements an in-memory brain-connectivity graph: nodes
// carrying named numeric property vectors, directed weighted edges, and a
// graph-level property schema shared by every node.
package graph

// Property is a fixed-dimension vector of float64 elements. The dimension is
// set at construction and never changes; elements are mutable in place.
type Property struct {
	values []float64
}

// Scalar creates a Property of dimension 1 holding v.
func Scalar(v float64) *Property {
	return &Property{values: []float64{v}}
}

// NewProperty creates a Property from the given elements, preserving order.
// The input is copied.
func NewProperty(values ...float64) *Property {
	vals := make([]float64, len(values))
	copy(vals, values)
	return &Property{values: vals}
}

// Dim returns the fixed dimension of the property.
func (p *Property) Dim() int {
	return len(p.values)
}

// At returns the element at position i.
func (p *Property) At(i int) (float64, error) {
	if i < 0 || i >= len(p.values) {
		return 0, &GraphError{Op: "at", Entity: "property", Index: i, Cause: ErrIndexOutOfRange}
	}
	return p.values[i], nil
}

// Set overwrites the element at position i. The dimension never grows.
func (p *Property) Set(i int, v float64) error {
	if i < 0 || i >= len(p.values) {
		return &GraphError{Op: "set", Entity: "property", Index: i, Cause: ErrIndexOutOfRange}
	}
	p.values[i] = v
	return nil
}

// Values returns the backing element slice. Mutations through the slice are
// visible to the property; the codec and scorer use this as their hot path.
func (p *Property) Values() []float64 {
	return p.values
}

// Clone returns a deep copy of the property.
func (p *Property) Clone() *Property {
	return NewProperty(p.values...)
}
