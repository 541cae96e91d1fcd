package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"archcanvas/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a diagram from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Diagram, error) {
	d := domain.NewDiagram()
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(d); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return d, nil
}

// Export writes a diagram as indented JSON
func (c *JSONCodec) Export(d *domain.Diagram, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
