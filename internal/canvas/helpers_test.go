package canvas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"archcanvas/internal/domain"
)

// testDiagram mirrors the stock layout: frontend at (400,200), backend to
// its right, postgres below it, redis below backend, worker further right
func testDiagram() *domain.Diagram {
	d := domain.NewDiagram()
	d.AddCard(domain.Card{Name: "frontend", Type: "javascript", X: 400, Y: 200})
	d.AddCard(domain.Card{Name: "backend", Type: "go", X: 800, Y: 200, Replicas: 3})
	d.AddCard(domain.Card{Name: "postgres", Type: "postgres", X: 400, Y: 480})
	d.AddCard(domain.Card{Name: "redis", Type: "redis", X: 800, Y: 480})
	d.AddCard(domain.Card{Name: "worker", Type: "worker", X: 1200, Y: 320})
	d.AddConnection(0, 1)
	d.AddConnection(1, 2)
	d.AddConnection(1, 3)
	d.AddConnection(1, 4)
	return d
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(testDiagram(), opts...)
	require.NoError(t, err)
	return e
}
