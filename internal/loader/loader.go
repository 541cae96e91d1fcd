// Package loader reads the static diagram a canvas session starts from.
package loader

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log"
	"os"

	"archcanvas/internal/codec"
	"archcanvas/internal/domain"
)

//go:embed sample.yaml
var sampleYAML []byte

// Sample returns the built-in five-service diagram
func Sample() *domain.Diagram {
	d, err := parse(codec.NewYAMLCodec(), bytes.NewReader(sampleYAML), "sample")
	if err != nil {
		panic(fmt.Sprintf("built-in sample diagram is invalid: %v", err))
	}
	return d
}

// Load reads and validates a diagram file. The format follows the file
// extension (.yaml, .yml or .json). An empty path returns Sample().
func Load(path string) (*domain.Diagram, error) {
	if path == "" {
		return Sample(), nil
	}

	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open diagram: %w", err)
	}
	defer f.Close()

	return parse(c, f, path)
}

// LoadBytes parses and validates an in-memory diagram in the given format
func LoadBytes(format string, data []byte) (*domain.Diagram, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}
	return parse(c, bytes.NewReader(data), format)
}

func parse(c codec.Importer, r io.Reader, source string) (*domain.Diagram, error) {
	d, err := c.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("load diagram %s: %w", source, err)
	}

	d.EnsureIDs()
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("load diagram %s: %w", source, err)
	}

	for _, i := range d.SelfLoops() {
		log.Printf("Diagram %s: connection %d (%s) starts and ends on the same card", source, i, d.Connections[i])
	}
	return d, nil
}
