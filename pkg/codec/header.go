package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/connectomics/braingraph/pkg/graph"
)

// Field widths of the on-disk format. Ids are 64-bit unsigned integers,
// property elements and edge weights are IEEE-754 doubles, all little-endian.
const (
	nodeIDBytes          = 8
	propertyElementBytes = 8
	edgeWeightBytes      = 8

	// edgeCountFieldWidth is the widest decimal rendering of a uint64,
	// reserved in the header so the edge tally can be patched in after the
	// data section is written.
	edgeCountFieldWidth = 20
)

// Section headings and the sentinel terminating the textual region.
const (
	sectionHeader     = "# Header"
	sectionProperties = "# Properties"
	sectionData       = "# Data"
)

// header is the parsed textual region of a graph file.
type header struct {
	NodeCount            uint64
	EdgeCount            uint64
	NodeIDBytes          int
	PropertyElementBytes int
	EdgeWeightBytes      int
	Schema               graph.Schema
}

// parseHeader consumes the textual region up to and including the "# Data"
// sentinel, leaving r positioned at the first payload byte. Reads are bounded
// by the sentinel; EOF before it is a parse error, never a hang.
func parseHeader(r *bufio.Reader) (*header, error) {
	h := &header{}
	sawCounts := false

	for {
		line, err := readLine(r)
		if err != nil {
			return nil, fmt.Errorf("%w: no %q terminator before EOF", ErrHeaderParse, sectionData)
		}
		switch strings.TrimSpace(line) {
		case sectionHeader:
			if err := h.parseCounts(r); err != nil {
				return nil, err
			}
			sawCounts = true
		case sectionProperties:
			if err := h.parseSchema(r); err != nil {
				return nil, err
			}
		case sectionData:
			if !sawCounts {
				return nil, fmt.Errorf("%w: missing %q section", ErrHeaderParse, sectionHeader)
			}
			return h, nil
		}
	}
}

// readLine returns the next line, tolerating a missing final newline.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// parseCounts reads the five "key = value" lines following "# Header".
func (h *header) parseCounts(r *bufio.Reader) error {
	entries := make(map[string]uint64, 5)
	for i := 0; i < 5; i++ {
		line, err := readLine(r)
		if err != nil {
			return fmt.Errorf("%w: EOF inside %q section", ErrHeaderParse, sectionHeader)
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%w: expected \"key = value\", got %q", ErrHeaderParse, strings.TrimSpace(line))
		}
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrHeaderParse, strings.TrimSpace(key), err)
		}
		entries[strings.TrimSpace(key)] = n
	}

	for _, key := range []string{"node_count", "edge_count", "node_id_bytes", "property_element_bytes", "edge_weight_bytes"} {
		if _, ok := entries[key]; !ok {
			return fmt.Errorf("%w: missing field %q", ErrHeaderParse, key)
		}
	}

	h.NodeCount = entries["node_count"]
	h.EdgeCount = entries["edge_count"]
	h.NodeIDBytes = int(entries["node_id_bytes"])
	h.PropertyElementBytes = int(entries["property_element_bytes"])
	h.EdgeWeightBytes = int(entries["edge_weight_bytes"])
	return nil
}

// parseSchema reads the "properties = (n1:d1),(n2:d2),…" line following
// "# Properties". The list is taken between the first '(' and the last ')'.
func (h *header) parseSchema(r *bufio.Reader) error {
	line, err := readLine(r)
	if err != nil {
		return fmt.Errorf("%w: EOF inside %q section", ErrHeaderParse, sectionProperties)
	}
	_, value, found := strings.Cut(line, "=")
	if !found {
		return fmt.Errorf("%w: expected \"properties = …\", got %q", ErrHeaderParse, strings.TrimSpace(line))
	}

	start := strings.Index(value, "(")
	end := strings.LastIndex(value, ")")
	if start < 0 || end < start {
		return fmt.Errorf("%w: property list %q has no (name:dim) entries", ErrHeaderParse, strings.TrimSpace(value))
	}

	for _, token := range strings.Split(value[start+1:end], ",") {
		name, dimStr, found := strings.Cut(token, ":")
		if !found {
			return fmt.Errorf("%w: property entry %q", ErrHeaderParse, strings.TrimSpace(token))
		}
		dim, err := strconv.ParseUint(strings.Trim(dimStr, " \t)"), 10, 32)
		if err != nil {
			return fmt.Errorf("%w: property entry %q: %v", ErrHeaderParse, strings.TrimSpace(token), err)
		}
		h.Schema = append(h.Schema, graph.PropertyDef{
			Name: strings.Trim(name, " \t("),
			Dim:  int(dim),
		})
	}
	return nil
}

// validateWidths refuses files whose declared widths this implementation
// cannot decode. Ids and property elements require exact width; edge weights
// keep the historical leniency of accepting narrower floats.
func (h *header) validateWidths() error {
	if h.NodeIDBytes != nodeIDBytes {
		return fmt.Errorf("%w: node_id_bytes = %d, want %d", ErrWidthMismatch, h.NodeIDBytes, nodeIDBytes)
	}
	if h.PropertyElementBytes != propertyElementBytes {
		return fmt.Errorf("%w: property_element_bytes = %d, want %d", ErrWidthMismatch, h.PropertyElementBytes, propertyElementBytes)
	}
	if h.EdgeWeightBytes > edgeWeightBytes {
		return fmt.Errorf("%w: edge_weight_bytes = %d exceeds %d", ErrWidthMismatch, h.EdgeWeightBytes, edgeWeightBytes)
	}
	if h.EdgeWeightBytes != 4 && h.EdgeWeightBytes != 8 {
		return fmt.Errorf("%w: edge_weight_bytes = %d is not a float width", ErrWidthMismatch, h.EdgeWeightBytes)
	}
	return nil
}
