// Package matrix projects a scalar node property onto a dense 3-D grid,
// using a 3-vector position property as the index.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/connectomics/braingraph/pkg/graph"
	"github.com/connectomics/braingraph/pkg/validation"
)

// Spec describes one projection: the grid dimensions and the two property
// names to read from each node.
type Spec struct {
	Rows      int    `validate:"min=1"`
	Cols      int    `validate:"min=1"`
	Slices    int    `validate:"min=1"`
	WeightKey string `validate:"required"`
	PosKey    string `validate:"required"`
}

// Volume is a dense rows x cols x slices grid stored flat in the normative
// ordering z + y*slices + x*cols*slices.
type Volume struct {
	Rows   int
	Cols   int
	Slices int
	data   []float64
}

// Project flattens the weight property over the grid. Cells no node maps to
// stay 0; when two nodes share a position the later node wins in iteration
// order. Positions must be non-negative integer-valued and inside the grid;
// out-of-range coordinates fail with an out-of-range error.
func Project(g *graph.Graph, spec Spec) (*Volume, error) {
	if err := validation.Struct(spec); err != nil {
		return nil, fmt.Errorf("matrix: %w", err)
	}

	v := &Volume{
		Rows:   spec.Rows,
		Cols:   spec.Cols,
		Slices: spec.Slices,
		data:   make([]float64, spec.Rows*spec.Cols*spec.Slices),
	}

	for i := 0; i < g.NumNodes(); i++ {
		node, err := g.Node(i)
		if err != nil {
			return nil, err
		}
		pos, ok := node.Property(spec.PosKey)
		if !ok {
			return nil, graph.PropertyError("project", spec.PosKey, graph.ErrUnknownProperty)
		}
		if pos.Dim() < 3 {
			return nil, fmt.Errorf("matrix: node %d: position %q has dim %d, need 3: %w",
				i, spec.PosKey, pos.Dim(), graph.ErrIndexOutOfRange)
		}
		weight, ok := node.Property(spec.WeightKey)
		if !ok {
			return nil, graph.PropertyError("project", spec.WeightKey, graph.ErrUnknownProperty)
		}

		coords := pos.Values()
		x, y, z := int(coords[0]), int(coords[1]), int(coords[2])
		if x < 0 || x >= spec.Rows || y < 0 || y >= spec.Cols || z < 0 || z >= spec.Slices {
			return nil, fmt.Errorf("matrix: node %d: position (%d,%d,%d) outside %dx%dx%d: %w",
				i, x, y, z, spec.Rows, spec.Cols, spec.Slices, graph.ErrIndexOutOfRange)
		}

		v.data[z+y*spec.Slices+x*spec.Cols*spec.Slices] = weight.Values()[0]
	}
	return v, nil
}

// At returns the cell at (x, y, z).
func (v *Volume) At(x, y, z int) (float64, error) {
	if x < 0 || x >= v.Rows || y < 0 || y >= v.Cols || z < 0 || z >= v.Slices {
		return 0, fmt.Errorf("volume: (%d,%d,%d) outside %dx%dx%d: %w",
			x, y, z, v.Rows, v.Cols, v.Slices, graph.ErrIndexOutOfRange)
	}
	return v.data[z+y*v.Slices+x*v.Cols*v.Slices], nil
}

// Flat returns the backing flat buffer in the normative ordering.
func (v *Volume) Flat() []float64 {
	return v.data
}

// Plane returns the x-th plane as a cols x slices dense matrix backed by the
// volume's buffer; writes through the matrix are visible in the volume.
func (v *Volume) Plane(x int) (*mat.Dense, error) {
	if x < 0 || x >= v.Rows {
		return nil, fmt.Errorf("volume: plane %d outside %d rows: %w", x, v.Rows, graph.ErrIndexOutOfRange)
	}
	stride := v.Cols * v.Slices
	return mat.NewDense(v.Cols, v.Slices, v.data[x*stride:(x+1)*stride]), nil
}
