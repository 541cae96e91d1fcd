package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archcanvas/internal/domain"
)

func TestSample(t *testing.T) {
	d := Sample()

	require.Len(t, d.Cards, 5)
	require.Len(t, d.Connections, 4)

	first := d.Cards[0]
	assert.Equal(t, "frontend", first.Name)
	assert.Equal(t, "frontend-prod.up.railway.app", first.URL)
	assert.Equal(t, "Deployed just now", first.Status)
	assert.Equal(t, "js", first.IconClass())
	assert.Equal(t, 400, first.X)
	assert.Equal(t, 200, first.Y)
	assert.Zero(t, first.Replicas)
	assert.Equal(t, 3, d.Cards[1].Replicas)

	for _, card := range d.Cards {
		assert.NotEmpty(t, card.ID, card.Name)
	}
	for _, conn := range d.Connections {
		assert.GreaterOrEqual(t, conn.From, 0)
		assert.Less(t, conn.From, len(d.Cards))
		assert.GreaterOrEqual(t, conn.To, 0)
		assert.Less(t, conn.To, len(d.Cards))
	}
}

func TestSampleCopies(t *testing.T) {
	a := Sample()
	a.Cards[0].X = 0
	assert.Equal(t, 400, Sample().Cards[0].X)
}

func TestLoadEmptyPath(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Len(t, d.Cards, 5)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "diagram.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
cards:
  - {name: a, type: go, x: 0, y: 0}
  - {name: b, type: go, x: 400, y: 0}
connections:
  - {from: 0, to: 1}
`), 0644))

	d, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Len(t, d.Cards, 2)

	jsonPath := filepath.Join(dir, "diagram.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"cards":[{"name":"a","x":0,"y":0}],"connections":[]}`), 0644))

	d, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Len(t, d.Cards, 1)
}

func TestLoadRejectsOutOfRangeConnection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cards:
  - {name: a, x: 0, y: 0}
connections:
  - {from: 0, to: 1}
`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConnection))

	var cfgErr *domain.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "connections[0].to", cfgErr.Field)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load("diagram.txt")
	assert.Error(t, err)
}

func TestLoadBytes(t *testing.T) {
	d, err := LoadBytes("json", []byte(`{"cards":[{"name":"a"},{"name":"b"}],"connections":[{"from":1,"to":1}]}`))
	require.NoError(t, err, "self loops only warn")
	assert.Len(t, d.Connections, 1)

	_, err = LoadBytes("xml", nil)
	assert.Error(t, err)
}
