package tilemap

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

// DebugStyle sets the colours used by RenderDebug. A nil colour skips that
// part of the drawing.
type DebugStyle struct {
	// fill of tiles that don't collide
	TileColor color.Color

	// fill of colliding tiles
	CollidingTileColor color.Color

	// edges of interesting faces
	FaceColor color.Color

	// output size multiplier, values <= 0 mean 1
	Scale float64
}

// DefaultDebugStyle returns the style used when RenderDebug is given nil
func DefaultDebugStyle() *DebugStyle {
	return &DebugStyle{
		TileColor:          color.RGBA{R: 105, G: 210, B: 231, A: 150},
		CollidingTileColor: color.RGBA{R: 243, G: 134, B: 48, A: 200},
		FaceColor:          color.RGBA{R: 40, G: 39, B: 37, A: 150},
		Scale:              1,
	}
}

// RenderDebug draws layer `ref` showing which tiles collide & where their
// faces are. Pixel (0,0) of the image is the top left of tile (0,0).
func (m *Tilemap) RenderDebug(ref LayerRef, style *DebugStyle) (image.Image, error) {
	l, err := m.layer("RenderDebug", ref)
	if err != nil {
		return nil, err
	}
	if style == nil {
		style = DefaultDebugStyle()
	}
	return renderDebug(l, style), nil
}

func renderDebug(l *LayerData, style *DebugStyle) image.Image {
	w, h := max(l.Width*l.TileWidth, 1), max(l.Height*l.TileHeight, 1)
	dc := gg.NewContext(w, h)
	dc.SetLineWidth(1)

	for _, t := range getTilesWithin(nil, &FilterOptions{IsNotEmpty: true}, l) {
		x := float64(t.x * l.TileWidth)
		y := float64(t.y * l.TileHeight)
		tw, th := float64(t.Width), float64(t.Height)

		fill := style.TileColor
		if t.Collides() {
			fill = style.CollidingTileColor
		}
		if fill != nil {
			dc.SetColor(fill)
			dc.DrawRectangle(x, y, tw, th)
			dc.Fill()
		}

		if style.FaceColor == nil || !t.HasInterestingFace() {
			continue
		}
		dc.SetColor(style.FaceColor)
		if t.FaceTop {
			dc.DrawLine(x, y, x+tw, y)
		}
		if t.FaceRight {
			dc.DrawLine(x+tw, y, x+tw, y+th)
		}
		if t.FaceBottom {
			dc.DrawLine(x, y+th, x+tw, y+th)
		}
		if t.FaceLeft {
			dc.DrawLine(x, y, x, y+th)
		}
		dc.Stroke()
	}

	img := dc.Image()
	if style.Scale <= 0 || style.Scale == 1 {
		return img
	}
	return resize.Resize(uint(float64(w)*style.Scale), uint(float64(h)*style.Scale), img, resize.NearestNeighbor)
}
