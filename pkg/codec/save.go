// Package codec reads and writes the self-describing binary graph format: a
// line-oriented textual header declaring counts, field widths and the
// property schema, terminated by "# Data", followed by a packed little-endian
// payload of node rows and edge records.
package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/connectomics/braingraph/pkg/graph"
	"github.com/connectomics/braingraph/pkg/logging"
	"github.com/connectomics/braingraph/pkg/validation"
)

// opLogger tags all entries of one save/load with a fresh operation id.
func opLogger(op, path string) *logging.Logger {
	return logging.Default().With(
		logging.String("component", "codec"),
		logging.String("op", op),
		logging.String("op_id", uuid.NewString()),
		logging.Path(path),
	)
}

// Save writes the graph to path in the standard uncompressed format.
//
// The header reserves a fixed-width edge_count field; after streaming the
// data section the true tally is patched in, left-aligned with the reserved
// spaces remaining. A failed save leaves a partial file behind; callers must
// treat it as corrupt.
func Save(g *graph.Graph, path string) (err error) {
	if err := validateSchemaNames(g); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	timer := logging.StartTimer(opLogger("save", path), "graph saved")

	f, err := os.Create(path)
	if err != nil {
		timer.EndError(err)
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)

	offset := 0
	n, _ := fmt.Fprintf(w, "%s\nnode_count = %d\n", sectionHeader, g.NumNodes())
	offset += n
	n, _ = w.WriteString("edge_count = ")
	offset += n
	edgeCountOffset := int64(offset)
	fmt.Fprintf(w, "%s\n", strings.Repeat(" ", edgeCountFieldWidth))
	fmt.Fprintf(w, "node_id_bytes = %d\n", nodeIDBytes)
	fmt.Fprintf(w, "property_element_bytes = %d\n", propertyElementBytes)
	fmt.Fprintf(w, "edge_weight_bytes = %d\n", edgeWeightBytes)
	writeSchemaSection(w, g)
	fmt.Fprintf(w, "%s\n", sectionData)

	edgeCount, err := writePayload(w, g)
	if err != nil {
		timer.EndError(err)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		timer.EndError(err)
		return fmt.Errorf("save %s: %w", path, err)
	}

	// Patch the reserved edge_count field with the streamed tally.
	if _, err := f.WriteAt([]byte(strconv.FormatUint(edgeCount, 10)), edgeCountOffset); err != nil {
		timer.EndError(err)
		return fmt.Errorf("save %s: patch edge_count: %w", path, err)
	}

	timer.End(logging.Int("nodes", g.NumNodes()), logging.Uint64("edges", edgeCount))
	return nil
}

func validateSchemaNames(g *graph.Graph) error {
	for _, def := range g.Schema() {
		if err := validation.PropertyName(def.Name); err != nil {
			return err
		}
	}
	return nil
}

// writeSchemaSection emits the "# Properties" section when there is a schema
// to describe. The order is the graph schema order, shared by every node.
func writeSchemaSection(w io.Writer, g *graph.Graph) {
	schema := g.Schema()
	if g.NumNodes() == 0 || len(schema) == 0 {
		return
	}
	fmt.Fprintf(w, "%s\nproperties = ", sectionProperties)
	for i, def := range schema {
		if i > 0 {
			io.WriteString(w, ",")
		}
		fmt.Fprintf(w, "(%s:%d)", def.Name, def.Dim)
	}
	io.WriteString(w, "\n")
}

// writePayload streams the packed data section: one row per node (id plus
// schema-ordered property elements), then one record per edge
// {source, target, weight}, tallying edges as they go out.
func writePayload(w io.Writer, g *graph.Graph) (uint64, error) {
	schema := g.Schema()
	var buf [8]byte

	for i := 0; i < g.NumNodes(); i++ {
		node, err := g.Node(i)
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint64(buf[:], node.ID())
		if _, err := w.Write(buf[:]); err != nil {
			return 0, fmt.Errorf("write node %d: %w", i, err)
		}
		for _, def := range schema {
			prop, ok := node.Property(def.Name)
			if !ok {
				return 0, graph.PropertyError("save", def.Name, graph.ErrUnknownProperty)
			}
			for _, v := range prop.Values() {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
				if _, err := w.Write(buf[:]); err != nil {
					return 0, fmt.Errorf("write node %d properties: %w", i, err)
				}
			}
		}
	}

	var rec [2*nodeIDBytes + edgeWeightBytes]byte
	var count uint64
	for i := 0; i < g.NumNodes(); i++ {
		edges, err := g.Edges(i)
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint64(rec[0:8], uint64(i))
		for _, e := range edges {
			binary.LittleEndian.PutUint64(rec[8:16], e.Target)
			binary.LittleEndian.PutUint64(rec[16:24], math.Float64bits(e.Weight))
			if _, err := w.Write(rec[:]); err != nil {
				return 0, fmt.Errorf("write edge %d->%d: %w", i, e.Target, err)
			}
			count++
		}
	}
	return count, nil
}
