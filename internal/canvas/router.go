package canvas

import (
	"strings"

	"archcanvas/internal/domain"
)

// RoutePoints picks a connector between the facing edges of a and b.
//
// The dominant axis is the one along which the card centers are further
// apart; equal distances route horizontally. The connector leaves a at the
// midpoint of the edge that faces b and enters b at the midpoint of the
// edge that faces a. When those midpoints are not aligned the line bends
// once across the gap, at the halfway coordinate, so both ends meet the
// cards square.
func RoutePoints(a, b domain.Card) []domain.Point {
	ca, cb := a.Center(), b.Center()
	dx, dy := cb.X-ca.X, cb.Y-ca.Y

	var start, end domain.Point
	horizontal := abs(dx) >= abs(dy)
	if horizontal {
		if cb.X > ca.X {
			start = domain.Pt(float64(a.X+domain.CardWidth), ca.Y)
			end = domain.Pt(float64(b.X), cb.Y)
		} else {
			start = domain.Pt(float64(a.X), ca.Y)
			end = domain.Pt(float64(b.X+domain.CardWidth), cb.Y)
		}
	} else {
		if cb.Y > ca.Y {
			start = domain.Pt(ca.X, float64(a.Y+domain.CardHeight))
			end = domain.Pt(cb.X, float64(b.Y))
		} else {
			start = domain.Pt(ca.X, float64(a.Y))
			end = domain.Pt(cb.X, float64(b.Y+domain.CardHeight))
		}
	}

	if horizontal && start.Y == end.Y || !horizontal && start.X == end.X {
		return []domain.Point{start, end}
	}

	if horizontal {
		mid := (start.X + end.X) / 2
		return []domain.Point{start, domain.Pt(mid, start.Y), domain.Pt(mid, end.Y), end}
	}
	mid := (start.Y + end.Y) / 2
	return []domain.Point{start, domain.Pt(start.X, mid), domain.Pt(end.X, mid), end}
}

// Route returns the SVG path data connecting a to b
func Route(a, b domain.Card) string {
	return PathData(RoutePoints(a, b))
}

// PathData renders a polyline as SVG path data: "M x,y L x,y ...".
// An empty polyline yields an empty string.
func PathData(points []domain.Point) string {
	var sb strings.Builder
	for i, p := range points {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(formatNumber(p.X))
		sb.WriteByte(',')
		sb.WriteString(formatNumber(p.Y))
	}
	return sb.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
