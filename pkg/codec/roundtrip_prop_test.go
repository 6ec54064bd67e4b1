package codec

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/connectomics/braingraph/pkg/graph"
)

// randomGraph builds a deterministic pseudo-random graph from the generator
// parameters: numNodes nodes carrying a scalar and a vecDim-vector property,
// with up to three outgoing edges each.
func randomGraph(numNodes, vecDim int, seed int64) (*graph.Graph, error) {
	rng := rand.New(rand.NewSource(seed))
	schema := graph.Schema{{Name: "weight", Dim: 1}, {Name: "vec", Dim: vecDim}}

	nodes := make([]*graph.Node, numNodes)
	edges := make([][]graph.Edge, numNodes)
	for i := 0; i < numNodes; i++ {
		vec := make([]float64, vecDim)
		for j := range vec {
			vec[j] = rng.NormFloat64()
		}
		nodes[i] = graph.NewNode(uint64(i), map[string]*graph.Property{
			"weight": graph.Scalar(rng.NormFloat64()),
			"vec":    graph.NewProperty(vec...),
		})
		for e := rng.Intn(3); e > 0; e-- {
			edges[i] = append(edges[i], graph.Edge{
				Target: uint64(rng.Intn(numNodes)),
				Weight: rng.NormFloat64(),
			})
		}
	}
	return graph.New(schema, nodes, edges)
}

// TestRoundTrip_Property uses property-based testing to verify that
// load(save(g)) reproduces any valid graph: same nodes, same schema order,
// element-wise equal property values, identical edge lists
func TestRoundTrip_Property(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)
	dir := t.TempDir()
	run := 0

	properties.Property("save then load preserves the graph", prop.ForAll(
		func(numNodes, vecDim int, seed int64) bool {
			g, err := randomGraph(numNodes, vecDim, seed)
			if err != nil {
				return false
			}

			run++
			path := filepath.Join(dir, fmt.Sprintf("graph-%d.bin", run))
			if err := Save(g, path); err != nil {
				return false
			}
			loaded, err := Load(path)
			if err != nil {
				return false
			}
			return graphsMatch(g, loaded)
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 4),
		gen.Int64(),
	))

	properties.Property("compressed container preserves the graph", prop.ForAll(
		func(numNodes, vecDim int, seed int64) bool {
			g, err := randomGraph(numNodes, vecDim, seed)
			if err != nil {
				return false
			}

			run++
			path := filepath.Join(dir, fmt.Sprintf("graph-%d.bin.sz", run))
			if err := SaveCompressed(g, path); err != nil {
				return false
			}
			loaded, err := Load(path)
			if err != nil {
				return false
			}
			return graphsMatch(g, loaded)
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 4),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
