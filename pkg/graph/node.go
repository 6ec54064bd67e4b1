package graph

import "sort"

// Node is a graph vertex: a non-negative integer id plus a mapping from
// property name to Property. Property iteration order is defined by the
// owning graph's Schema, not by the map.
type Node struct {
	id    uint64
	props map[string]*Property
}

// NewNode creates a node with the given id and property map. The map is
// taken over by the node; callers must not share Property pointers between
// nodes if independent mutation is expected.
func NewNode(id uint64, props map[string]*Property) *Node {
	if props == nil {
		props = make(map[string]*Property)
	}
	return &Node{id: id, props: props}
}

// ID returns the node identifier. For a node inside a Graph this equals the
// node's position.
func (n *Node) ID() uint64 {
	return n.id
}

// Property returns the named property, or false if the node does not carry it.
func (n *Node) Property(name string) (*Property, bool) {
	p, ok := n.props[name]
	return p, ok
}

// Properties returns the underlying property map. Values may be mutated in
// place; adding or removing keys after graph construction breaks the schema.
func (n *Node) Properties() map[string]*Property {
	return n.props
}

// PropertyDef names one schema entry: a property and its fixed dimension.
type PropertyDef struct {
	Name string
	Dim  int
}

// Schema is the ordered list of (name, dim) pairs shared by every node of a
// graph. The order is the property serialization order.
type Schema []PropertyDef

// TotalElements returns the summed dimension over all schema entries.
func (s Schema) TotalElements() int {
	total := 0
	for _, def := range s {
		total += def.Dim
	}
	return total
}

// Find returns the schema entry for name.
func (s Schema) Find(name string) (PropertyDef, bool) {
	for _, def := range s {
		if def.Name == name {
			return def, true
		}
	}
	return PropertyDef{}, false
}

// Clone returns a copy of the schema.
func (s Schema) Clone() Schema {
	out := make(Schema, len(s))
	copy(out, s)
	return out
}

// InferSchema derives a schema from a single node, ordering entries by name.
// Any order is valid as long as all nodes of a graph share it; sorting makes
// the inferred order deterministic despite map iteration.
func InferSchema(n *Node) Schema {
	names := make([]string, 0, len(n.props))
	for name := range n.props {
		names = append(names, name)
	}
	sort.Strings(names)

	schema := make(Schema, 0, len(names))
	for _, name := range names {
		schema = append(schema, PropertyDef{Name: name, Dim: n.props[name].Dim()})
	}
	return schema
}
