package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"archcanvas/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDiagram is the on-disk YAML layout
type yamlDiagram struct {
	Cards       []yamlCard       `yaml:"cards"`
	Connections []yamlConnection `yaml:"connections"`
}

type yamlCard struct {
	ID       string `yaml:"id,omitempty"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	URL      string `yaml:"url,omitempty"`
	Status   string `yaml:"status,omitempty"`
	Icon     string `yaml:"icon,omitempty"`
	Replicas int    `yaml:"replicas,omitempty"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
}

type yamlConnection struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// Parse imports a diagram from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Diagram, error) {
	var yd yamlDiagram
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&yd); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	d := domain.NewDiagram()
	for _, yc := range yd.Cards {
		d.AddCard(domain.Card{
			ID:       yc.ID,
			Name:     yc.Name,
			Type:     yc.Type,
			URL:      yc.URL,
			Status:   yc.Status,
			Icon:     yc.Icon,
			Replicas: yc.Replicas,
			X:        yc.X,
			Y:        yc.Y,
		})
	}
	for _, conn := range yd.Connections {
		d.AddConnection(conn.From, conn.To)
	}
	return d, nil
}

// Export writes a diagram as YAML
func (c *YAMLCodec) Export(d *domain.Diagram, w io.Writer) error {
	yd := yamlDiagram{
		Cards:       make([]yamlCard, 0, len(d.Cards)),
		Connections: make([]yamlConnection, 0, len(d.Connections)),
	}
	for _, card := range d.Cards {
		yd.Cards = append(yd.Cards, yamlCard{
			ID:       card.ID,
			Name:     card.Name,
			Type:     card.Type,
			URL:      card.URL,
			Status:   card.Status,
			Icon:     card.Icon,
			Replicas: card.Replicas,
			X:        card.X,
			Y:        card.Y,
		})
	}
	for _, conn := range d.Connections {
		yd.Connections = append(yd.Connections, yamlConnection{From: conn.From, To: conn.To})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(yd); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
