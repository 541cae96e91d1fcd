// Package render rasterizes canvas frames into PNG snapshots.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"archcanvas/internal/canvas"
	"archcanvas/internal/domain"
)

var (
	// ErrEmptyFrame is returned when there are no cards to draw
	ErrEmptyFrame = errors.New("nothing to export")
	// ErrTooLarge is returned when the layout would exceed MaxPixels
	ErrTooLarge = errors.New("snapshot too large")
)

// MaxPixels caps the snapshot area; 16M pixels is 64 MiB of RGBA
const MaxPixels = 1 << 24

// Options controls snapshot layout
type Options struct {
	Padding  int
	FontSize float64
}

// DefaultOptions matches the config defaults
func DefaultOptions() Options {
	return Options{Padding: 40, FontSize: 16}
}

var (
	backgroundColor = color.RGBA{0xf7, 0xf7, 0xf8, 0xff}
	cardFill        = color.White
	cardBorder      = color.RGBA{0xd0, 0xd4, 0xdc, 0xff}
	draggedBorder   = color.RGBA{0x5b, 0x6c, 0xff, 0xff}
	connectorColor  = color.RGBA{0x8a, 0x90, 0x9c, 0xff}
	textColor       = color.RGBA{0x1f, 0x23, 0x2b, 0xff}
	mutedTextColor  = color.RGBA{0x6b, 0x72, 0x80, 0xff}
)

// PNG draws the cards and connectors of a frame in canvas space, cropped
// to the cards' bounding box plus padding. The viewport transform is not
// applied: the snapshot always shows the whole layout at scale 1.
func PNG(w io.Writer, frame canvas.Frame, opts Options) error {
	if len(frame.Cards) == 0 {
		return ErrEmptyFrame
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions().FontSize
	}

	minX, minY, maxX, maxY := bounds(frame)
	pad := float64(opts.Padding)
	originX, originY := minX-pad, minY-pad
	fw := math.Ceil(maxX - minX + 2*pad)
	fh := math.Ceil(maxY - minY + 2*pad)
	if fw*fh > MaxPixels {
		return fmt.Errorf("%w: %.0fx%.0f exceeds %d pixels", ErrTooLarge, fw, fh, MaxPixels)
	}
	width, height := int(fw), int(fh)

	dc := gg.NewContext(width, height)
	dc.SetColor(backgroundColor)
	dc.Clear()

	face, err := loadFace(opts.FontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	// Connectors first so cards cover their ends
	for _, conn := range frame.Connectors {
		drawConnector(dc, conn.Points, originX, originY)
	}
	for _, card := range frame.Cards {
		drawCard(dc, card, originX, originY, opts.FontSize)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func bounds(frame canvas.Frame) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, card := range frame.Cards {
		r := card.Bounds()
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X+r.W)
		maxY = math.Max(maxY, r.Y+r.H)
	}
	return minX, minY, maxX, maxY
}

func loadFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawConnector(dc *gg.Context, points []domain.Point, ox, oy float64) {
	if len(points) < 2 {
		return
	}
	dc.SetColor(connectorColor)
	dc.SetLineWidth(2)
	dc.MoveTo(points[0].X-ox, points[0].Y-oy)
	for _, p := range points[1:] {
		dc.LineTo(p.X-ox, p.Y-oy)
	}
	dc.Stroke()

	tail, tip := points[len(points)-2], points[len(points)-1]
	drawArrow(dc, tail.X-ox, tail.Y-oy, tip.X-ox, tip.Y-oy)
}

func drawArrow(dc *gg.Context, fx, fy, tx, ty float64) {
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	const size = 8.0
	const spread = 0.5

	dc.MoveTo(tx, ty)
	dc.LineTo(tx-size*dx+size*dy*spread, ty-size*dy-size*dx*spread)
	dc.LineTo(tx-size*dx-size*dy*spread, ty-size*dy+size*dx*spread)
	dc.ClosePath()
	dc.Fill()
}

func drawCard(dc *gg.Context, card canvas.CardView, ox, oy, fontSize float64) {
	x := float64(card.X) - ox
	y := float64(card.Y) - oy
	w, h := float64(card.Width), float64(card.Height)

	dc.DrawRoundedRectangle(x, y, w, h, 8)
	dc.SetColor(cardFill)
	dc.FillPreserve()
	if card.Dragging {
		dc.SetColor(draggedBorder)
		dc.SetLineWidth(2)
	} else {
		dc.SetColor(cardBorder)
		dc.SetLineWidth(1)
	}
	dc.Stroke()

	line := fontSize * 1.5
	textX := x + 16
	textY := y + 16 + fontSize

	dc.SetColor(textColor)
	dc.DrawString(fmt.Sprintf("[%s] %s", card.IconClass, card.Name), textX, textY)

	dc.SetColor(mutedTextColor)
	for _, s := range []string{card.URL, card.Status, replicasLabel(card.Replicas)} {
		if s == "" {
			continue
		}
		textY += line
		if textY > y+h-8 {
			break
		}
		dc.DrawString(s, textX, textY)
	}
}

func replicasLabel(n int) string {
	switch {
	case n <= 0:
		return ""
	case n == 1:
		return "1 Replica"
	default:
		return fmt.Sprintf("%d Replicas", n)
	}
}
