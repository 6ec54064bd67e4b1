package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/connectomics/braingraph/pkg/graph"
	"github.com/connectomics/braingraph/pkg/logging"
)

// Load reads a graph file written by Save or SaveCompressed, auto-detecting
// the compressed container. The file handle is scoped to the call and
// released on every exit path.
func Load(path string) (*graph.Graph, error) {
	timer := logging.StartTimer(opLogger("load", path), "graph loaded")

	f, err := os.Open(path)
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := loadFrom(bufio.NewReader(f))
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	timer.End(logging.Int("nodes", g.NumNodes()), logging.Int("edges", g.NumEdges()))
	return g, nil
}

// loadFrom dispatches between the standard format and the snappy container.
func loadFrom(r *bufio.Reader) (*graph.Graph, error) {
	if magic, err := r.Peek(len(snappyMagic)); err == nil && string(magic) == snappyMagic {
		return loadCompressed(r)
	}
	return decode(r)
}

// decode parses the textual header, validates the declared widths against
// this implementation, then reads the packed node rows and edge records.
func decode(r *bufio.Reader) (*graph.Graph, error) {
	h, err := parseHeader(r)
	if err != nil {
		return nil, err
	}
	if err := h.validateWidths(); err != nil {
		return nil, err
	}

	nodes, err := decodeNodes(r, h)
	if err != nil {
		return nil, err
	}
	edges, err := decodeEdges(r, h)
	if err != nil {
		return nil, err
	}
	return graph.New(h.Schema, nodes, edges)
}

// decodeNodes reads one row per node: the id, then all property elements in
// schema order, sliced into per-name properties by the schema's dims.
func decodeNodes(r io.Reader, h *header) ([]*graph.Node, error) {
	rowBytes := h.Schema.TotalElements() * propertyElementBytes
	row := make([]byte, rowBytes)
	var idBuf [nodeIDBytes]byte

	nodes := make([]*graph.Node, 0, h.NodeCount)
	for i := uint64(0); i < h.NodeCount; i++ {
		if _, err := io.ReadFull(r, idBuf[:]); err != nil {
			return nil, fmt.Errorf("%w: node %d id: %v", ErrTruncated, i, err)
		}
		id := binary.LittleEndian.Uint64(idBuf[:])

		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("%w: node %d properties: %v", ErrTruncated, i, err)
		}
		props := make(map[string]*graph.Property, len(h.Schema))
		off := 0
		for _, def := range h.Schema {
			vals := make([]float64, def.Dim)
			for j := range vals {
				vals[j] = math.Float64frombits(binary.LittleEndian.Uint64(row[off:]))
				off += propertyElementBytes
			}
			props[def.Name] = graph.NewProperty(vals...)
		}
		nodes = append(nodes, graph.NewNode(id, props))
	}
	return nodes, nil
}

// decodeEdges reads edge_count records, appending each to its source node's
// list. A 4-byte weight is read as float32 and widened.
func decodeEdges(r io.Reader, h *header) ([][]graph.Edge, error) {
	edges := make([][]graph.Edge, h.NodeCount)
	rec := make([]byte, 2*nodeIDBytes+h.EdgeWeightBytes)

	for i := uint64(0); i < h.EdgeCount; i++ {
		if _, err := io.ReadFull(r, rec); err != nil {
			return nil, fmt.Errorf("%w: edge record %d: %v", ErrTruncated, i, err)
		}
		src := binary.LittleEndian.Uint64(rec[0:8])
		tgt := binary.LittleEndian.Uint64(rec[8:16])

		var weight float64
		if h.EdgeWeightBytes == 4 {
			weight = float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[16:20])))
		} else {
			weight = math.Float64frombits(binary.LittleEndian.Uint64(rec[16:24]))
		}

		if src >= h.NodeCount {
			return nil, fmt.Errorf("edge record %d: source %d: %w", i, src, graph.ErrIndexOutOfRange)
		}
		edges[src] = append(edges[src], graph.Edge{Target: tgt, Weight: weight})
	}
	return edges, nil
}
