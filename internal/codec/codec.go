// Package codec converts diagrams to and from their file formats.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"archcanvas/internal/domain"
)

// Importer parses a diagram from a reader
type Importer interface {
	Parse(r io.Reader) (*domain.Diagram, error)
	Format() string
}

// Exporter writes a diagram to a writer
type Exporter interface {
	Export(d *domain.Diagram, w io.Writer) error
	Format() string
}

// Codec is a format that supports both directions
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec registered under a format name
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "json":
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported diagram format %q", format)
	}
}

// ForPath picks a codec from a file extension
func ForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("cannot infer diagram format from %q", path)
	}
	return ForFormat(ext)
}
