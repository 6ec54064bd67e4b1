package codec

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"

	"github.com/connectomics/braingraph/pkg/graph"
	"github.com/connectomics/braingraph/pkg/logging"
)

// LoadMapped reads a graph through a memory-mapped file, avoiding read
// syscalls on large connectome files. Format handling is shared with Load,
// including compressed-container detection.
func LoadMapped(path string) (*graph.Graph, error) {
	timer := logging.StartTimer(opLogger("load_mapped", path), "graph loaded")

	r, err := mmap.Open(path)
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer r.Close()

	sr := io.NewSectionReader(r, 0, int64(r.Len()))
	g, err := loadFrom(bufio.NewReader(sr))
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	timer.End(logging.Int("nodes", g.NumNodes()), logging.Int("edges", g.NumEdges()))
	return g, nil
}
