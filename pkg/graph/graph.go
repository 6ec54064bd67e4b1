package graph

import "fmt"

// Edge is a directed connection to a target node with a scalar weight. The
// source is implied by the per-node edge list holding the edge.
type Edge struct {
	Target uint64
	Weight float64
}

// Graph is an ordered collection of nodes and, per node, an ordered list of
// outgoing edges. Node ids equal their positions (no holes), every node
// carries the same property schema, and every edge target is a valid index.
// These invariants are enforced at construction and hold for the lifetime of
// the graph; property values and edge lists remain mutable in place.
//
// A Graph is not safe for concurrent mutation. Callers wishing to
// parallelize should partition work by graph instance.
type Graph struct {
	schema Schema
	nodes  []*Node
	edges  [][]Edge
}

// New constructs a graph from nodes and per-node outgoing edge lists,
// validating the structural invariants:
//
//   - node i must have id i;
//   - every node must carry exactly the schema's properties with matching
//     dimensions;
//   - every edge target must be a valid node index;
//   - edges must have one list per node (nil means no edges anywhere).
func New(schema Schema, nodes []*Node, edges [][]Edge) (*Graph, error) {
	if edges == nil {
		edges = make([][]Edge, len(nodes))
	}
	if len(edges) != len(nodes) {
		return nil, fmt.Errorf("graph: %d edge lists for %d nodes: %w", len(edges), len(nodes), ErrSchemaMismatch)
	}

	for i, node := range nodes {
		if node.ID() != uint64(i) {
			return nil, fmt.Errorf("graph: node at position %d has id %d: %w", i, node.ID(), ErrSchemaMismatch)
		}
		if err := validateNodeSchema(schema, node); err != nil {
			return nil, fmt.Errorf("graph: node %d: %w", i, err)
		}
	}

	n := uint64(len(nodes))
	for i, list := range edges {
		for _, e := range list {
			if e.Target >= n {
				return nil, fmt.Errorf("graph: edge %d->%d: %w", i, e.Target, ErrIndexOutOfRange)
			}
		}
	}

	return &Graph{schema: schema.Clone(), nodes: nodes, edges: edges}, nil
}

func validateNodeSchema(schema Schema, node *Node) error {
	if len(node.props) != len(schema) {
		return fmt.Errorf("%d properties, schema has %d: %w", len(node.props), len(schema), ErrSchemaMismatch)
	}
	for _, def := range schema {
		prop, ok := node.props[def.Name]
		if !ok {
			return PropertyError("validate", def.Name, ErrSchemaMismatch)
		}
		if prop.Dim() != def.Dim {
			return fmt.Errorf("property %q has dim %d, schema says %d: %w", def.Name, prop.Dim(), def.Dim, ErrSchemaMismatch)
		}
	}
	return nil
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Schema returns a copy of the graph's property schema.
func (g *Graph) Schema() Schema {
	return g.schema.Clone()
}

// Node returns the node at position i. The returned node is the graph's own;
// property values may be mutated through it.
func (g *Graph) Node(i int) (*Node, error) {
	if i < 0 || i >= len(g.nodes) {
		return nil, NodeRangeError("node", i)
	}
	return g.nodes[i], nil
}

// Edges returns the outgoing edge list of node i. The returned slice is the
// graph's own backing list.
func (g *Graph) Edges(i int) ([]Edge, error) {
	if i < 0 || i >= len(g.nodes) {
		return nil, NodeRangeError("edges", i)
	}
	return g.edges[i], nil
}

// NumEdges returns the total number of directed edges.
func (g *Graph) NumEdges() int {
	total := 0
	for _, list := range g.edges {
		total += len(list)
	}
	return total
}
