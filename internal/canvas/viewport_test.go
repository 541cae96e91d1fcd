package canvas

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"archcanvas/internal/domain"
)

func TestViewportDefaults(t *testing.T) {
	v := NewViewport()
	assert.Equal(t, 1.0, v.Scale)
	assert.Equal(t, 0.0, v.OffsetX)
	assert.Equal(t, 0.0, v.OffsetY)
	assert.Equal(t, "translate(0px, 0px) scale(1)", v.Transform())
}

func TestViewportPan(t *testing.T) {
	v := NewViewport()
	v.Scale = 2
	v.Pan(50, 50)
	v.Pan(-10, 5)

	assert.Equal(t, 40.0, v.OffsetX, "pan must not be scaled")
	assert.Equal(t, 55.0, v.OffsetY)
	assert.Equal(t, "translate(40px, 55px) scale(2)", v.Transform())
}

func TestViewportPanStaysBounded(t *testing.T) {
	v := NewViewport()
	v.Pan(1e308, -1e308)
	v.Pan(1e308, -1e308)
	assert.Equal(t, MaxOffset, v.OffsetX)
	assert.Equal(t, -MaxOffset, v.OffsetY)

	v.Pan(math.Inf(-1), math.Inf(1))
	assert.Equal(t, -MaxOffset, v.OffsetX)
	assert.Equal(t, MaxOffset, v.OffsetY)

	v.Pan(math.NaN(), 0)
	assert.Equal(t, -MaxOffset, v.OffsetX)
}

func TestViewportZoom(t *testing.T) {
	t.Run("wheel up zooms in", func(t *testing.T) {
		v := NewViewport()
		assert.True(t, v.Zoom(-100, domain.Point{}))
		assert.Greater(t, v.Scale, 1.0)
		assert.Contains(t, v.Transform(), "scale(1.1)")
	})

	t.Run("wheel down zooms out", func(t *testing.T) {
		v := NewViewport()
		assert.True(t, v.Zoom(100, domain.Point{}))
		assert.Less(t, v.Scale, 1.0)
	})

	t.Run("twenty wheel ups clamp at max", func(t *testing.T) {
		v := NewViewport()
		for i := 0; i < 20; i++ {
			v.Zoom(-100, domain.Point{})
		}
		assert.Equal(t, 2.0, v.Scale)
		assert.False(t, v.Zoom(-100, domain.Point{}), "clamped zoom reports no change")
	})

	t.Run("twenty wheel downs clamp at min", func(t *testing.T) {
		v := NewViewport()
		for i := 0; i < 20; i++ {
			v.Zoom(100, domain.Point{})
		}
		assert.Equal(t, 0.5, v.Scale)
	})

	t.Run("random sequences stay in range", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		v := NewViewport()
		for i := 0; i < 2000; i++ {
			delta := float64(rng.Intn(400) - 200)
			v.Zoom(delta, domain.Pt(rng.Float64()*1000, rng.Float64()*1000))
			if v.Scale < MinScale || v.Scale > MaxScale {
				t.Fatalf("scale %v escaped [%v, %v] after %d ticks", v.Scale, MinScale, MaxScale, i)
			}
		}
	})

	t.Run("origin pivot leaves offset alone", func(t *testing.T) {
		v := NewViewport()
		v.Pan(100, 40)
		v.Zoom(-1, domain.Pt(500, 500))
		assert.Equal(t, 100.0, v.OffsetX)
		assert.Equal(t, 40.0, v.OffsetY)
	})

	t.Run("pointer pivot keeps point under cursor", func(t *testing.T) {
		v := NewViewport()
		v.Pivot = PivotPointer
		v.Pan(100, 40)
		pivot := domain.Pt(500, 300)
		before := v.ToCanvas(pivot)

		v.Zoom(-1, pivot)
		after := v.ToCanvas(pivot)
		assert.InDelta(t, before.X, after.X, 1e-9)
		assert.InDelta(t, before.Y, after.Y, 1e-9)
	})
}

func TestViewportConversions(t *testing.T) {
	v := &Viewport{OffsetX: 30, OffsetY: -20, Scale: 1.5}
	p := domain.Pt(120, 80)

	screen := v.ToScreen(p)
	assert.Equal(t, domain.Pt(210, 100), screen)
	assert.Equal(t, p, v.ToCanvas(screen))
}

func TestParsePivotPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    PivotPolicy
		wantErr bool
	}{
		{"", PivotOrigin, false},
		{"origin", PivotOrigin, false},
		{"pointer", PivotPointer, false},
		{"cursor", PivotOrigin, true},
	}

	for _, tt := range tests {
		got, err := ParsePivotPolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
