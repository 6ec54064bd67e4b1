package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"

	"github.com/connectomics/braingraph/pkg/graph"
	"github.com/connectomics/braingraph/pkg/logging"
)

// snappyMagic opens the compressed container; the rest of the file is one
// snappy block holding the standard serialization byte for byte.
const snappyMagic = "# Snappy\n"

// SaveCompressed writes the graph as a snappy-compressed container. Load
// detects the container automatically; the uncompressed format is unchanged.
func SaveCompressed(g *graph.Graph, path string) (err error) {
	if err := validateSchemaNames(g); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	timer := logging.StartTimer(opLogger("save_compressed", path), "graph saved")

	var buf bytes.Buffer
	if err := encodeBuffer(&buf, g); err != nil {
		timer.EndError(err)
		return fmt.Errorf("save %s: %w", path, err)
	}
	block := snappy.Encode(nil, buf.Bytes())

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

	if _, err := io.WriteString(f, snappyMagic); err != nil {
		timer.EndError(err)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := f.Write(block); err != nil {
		timer.EndError(err)
		return fmt.Errorf("save %s: %w", path, err)
	}

	timer.End(
		logging.Int("nodes", g.NumNodes()),
		logging.Int("edges", g.NumEdges()),
		logging.Int("bytes_uncompressed", buf.Len()),
		logging.Int("bytes_compressed", len(block)),
	)
	return nil
}

// encodeBuffer produces the standard serialization in memory. The edge tally
// is known up front here, so the reserved edge_count field is emitted
// left-aligned with its trailing spaces directly instead of being patched.
func encodeBuffer(buf *bytes.Buffer, g *graph.Graph) error {
	fmt.Fprintf(buf, "%s\nnode_count = %d\n", sectionHeader, g.NumNodes())
	fmt.Fprintf(buf, "edge_count = %-*d\n", edgeCountFieldWidth, g.NumEdges())
	fmt.Fprintf(buf, "node_id_bytes = %d\n", nodeIDBytes)
	fmt.Fprintf(buf, "property_element_bytes = %d\n", propertyElementBytes)
	fmt.Fprintf(buf, "edge_weight_bytes = %d\n", edgeWeightBytes)
	writeSchemaSection(buf, g)
	fmt.Fprintf(buf, "%s\n", sectionData)

	_, err := writePayload(buf, g)
	return err
}

// loadCompressed decompresses the block after the magic line and decodes the
// contained standard serialization.
func loadCompressed(r *bufio.Reader) (*graph.Graph, error) {
	if _, err := r.Discard(len(snappyMagic)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderParse, err)
	}
	block, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read compressed block: %w", err)
	}
	data, err := snappy.Decode(nil, block)
	if err != nil {
		return nil, fmt.Errorf("decompress graph: %w", err)
	}
	return decode(bufio.NewReader(bytes.NewReader(data)))
}
