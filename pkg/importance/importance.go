// Package importance scores node importance by aggregating externally
// computed inter-ROI paths onto per-node count and confidence properties.
// How the paths are produced (shortest-path search, tractography) is the
// caller's concern; each path arrives as a sequence of node ids decorated
// with cumulative weights.
package importance

import (
	"fmt"
	"math"

	"github.com/connectomics/braingraph/pkg/graph"
	"github.com/connectomics/braingraph/pkg/logging"
	"github.com/connectomics/braingraph/pkg/validation"
)

// PathNode is one step of a path: a node id and the cumulative weight of the
// walk up to that node.
type PathNode struct {
	ID     uint64  `yaml:"id"`
	Weight float64 `yaml:"weight"`
}

// Path is an ordered walk between two regions of interest.
type Path []PathNode

// Options names the three properties the scorer works with. Prior is read
// only; Count and Confidence are overwritten.
type Options struct {
	Prior      string `validate:"required"`
	Count      string `validate:"required"`
	Confidence string `validate:"required"`
}

// DefaultOptions returns the conventional property names.
func DefaultOptions() Options {
	return Options{Prior: "prior", Count: "count", Confidence: "confidence"}
}

// Score updates the count and confidence properties of every node from the
// given path set.
//
// Element 0 of count and confidence is first reset to 0 on all nodes. Then,
// for each path with at least one edge, the path's score
// exp(-(distance/length)) is accumulated into confidence[0] and the
// incidence tally into count[0] of every node on the path, endpoints
// included, where distance is the final cumulative weight minus log(sqrt
// prior) of both endpoints. Paths of length zero (isolated endpoints) are
// skipped.
//
// The prior of every path endpoint must be strictly positive; non-positive
// priors yield non-finite scores. This is a documented precondition, not a
// defensive check. The operation is not transactional: on error, nodes
// scored so far keep their updates.
func Score(g *graph.Graph, paths []Path, opts Options) error {
	if err := validation.Struct(opts); err != nil {
		return fmt.Errorf("importance: %w", err)
	}
	for _, name := range []string{opts.Prior, opts.Count, opts.Confidence} {
		def, ok := g.Schema().Find(name)
		if !ok {
			return graph.PropertyError("score", name, graph.ErrUnknownProperty)
		}
		if def.Dim < 1 {
			return graph.PropertyError("score", name, graph.ErrIndexOutOfRange)
		}
	}

	// Reset pass: every node starts at zero, so nodes untouched by any path
	// end at zero.
	for i := 0; i < g.NumNodes(); i++ {
		node, err := g.Node(i)
		if err != nil {
			return err
		}
		count, _ := node.Property(opts.Count)
		confidence, _ := node.Property(opts.Confidence)
		count.Values()[0] = 0
		confidence.Values()[0] = 0
	}

	scored := 0
	skipped := 0
	for _, path := range paths {
		length := len(path) - 1
		if length <= 0 {
			skipped++
			continue
		}

		first, err := g.Node(int(path[0].ID))
		if err != nil {
			return fmt.Errorf("importance: path start: %w", err)
		}
		last, err := g.Node(int(path[length].ID))
		if err != nil {
			return fmt.Errorf("importance: path end: %w", err)
		}

		firstPrior, _ := first.Property(opts.Prior)
		lastPrior, _ := last.Property(opts.Prior)
		w0 := math.Log(math.Sqrt(firstPrior.Values()[0]))
		wn := math.Log(math.Sqrt(lastPrior.Values()[0]))

		distance := path[length].Weight - w0 - wn
		score := math.Exp(-(distance / float64(length)))

		for _, step := range path {
			node, err := g.Node(int(step.ID))
			if err != nil {
				return fmt.Errorf("importance: path step: %w", err)
			}
			count, _ := node.Property(opts.Count)
			confidence, _ := node.Property(opts.Confidence)
			count.Values()[0] += 1
			confidence.Values()[0] += score
		}
		scored++
	}

	logging.Default().Debug("importance scored",
		logging.String("component", "importance"),
		logging.Int("paths", len(paths)),
		logging.Int("scored", scored),
		logging.Int("skipped", skipped),
	)
	return nil
}
