package tilemap

// Quad is one tile ready to be drawn: where it goes in the world & where its
// pixels are in the tileset image.
type Quad struct {
	TileX, TileY int
	Index        int

	// world position of the top left corner
	X, Y float64

	// in pixels
	Width, Height int

	// top left of the tile in the tileset image
	SrcX, SrcY int
}

// LayerView is a renderable projection of a layer at a world offset.
//
// A mutable view allows the layer's tiles to be edited. A static view makes
// the layer read only & captures its draw batch once, at creation.
type LayerView struct {
	ID int

	// world offset in pixels
	X, Y float64

	// how much the layer follows the camera, 1 moves with the world, 0 is
	// fixed on screen
	ScrollFactorX float64
	ScrollFactorY float64

	Tileset *Tileset

	layer      *LayerData
	// the layer this view was made for, survives Destroy
	source     *LayerData
	layerIndex int
	mutable    bool
	destroyed  bool
	batch      []Quad
}

func newLayerView(id int, layer *LayerData, tileset *Tileset, x, y float64, mutable bool) *LayerView {
	v := &LayerView{
		ID:            id,
		X:             x,
		Y:             y,
		ScrollFactorX: 1,
		ScrollFactorY: 1,
		Tileset:       tileset,
		layer:         layer,
		source:        layer,
		layerIndex:    layer.index,
		mutable:       mutable,
	}
	if !mutable {
		v.batch = v.buildQuads()
	}
	return v
}

// Mutable returns if the bound layer's tiles may be edited through the map
func (v *LayerView) Mutable() bool { return v.mutable }

// LayerIndex is the index of the layer this view was created for
func (v *LayerView) LayerIndex() int { return v.layerIndex }

// Layer returns the layer this view renders (nil once destroyed)
func (v *LayerView) Layer() *LayerData { return v.layer }

// Destroyed returns if Destroy has been called
func (v *LayerView) Destroyed() bool { return v.destroyed }

// SetScrollFactor sets how much the layer follows the camera
func (v *LayerView) SetScrollFactor(x, y float64) {
	v.ScrollFactorX = x
	v.ScrollFactorY = y
}

// Destroy releases the view & detaches it from its layer.
// Destroying twice is a no-op.
func (v *LayerView) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	if v.layer != nil {
		v.layer.detach(v)
	}
	v.layer = nil
	v.batch = nil
}

// Quads returns what should be drawn. Static views return the batch captured
// at creation, mutable views compute it from the current tiles.
func (v *LayerView) Quads() []Quad {
	if v.destroyed {
		return nil
	}
	if !v.mutable {
		return v.batch
	}
	return v.buildQuads()
}

// buildQuads walks the layer in row-major order collecting every tile the
// tileset can draw.
func (v *LayerView) buildQuads() []Quad {
	if v.Tileset == nil || v.layer == nil {
		return nil
	}
	quads := []Quad{}
	for y := 0; y < v.layer.Height; y++ {
		for x := 0; x < v.layer.Width; x++ {
			t := v.layer.data[y][x]
			if t == nil || t.IsEmpty() {
				continue
			}
			sx, sy, ok := v.Tileset.TileTextureCoordinates(t.Index)
			if !ok {
				continue
			}
			quads = append(quads, Quad{
				TileX:  x,
				TileY:  y,
				Index:  t.Index,
				X:      v.X + float64(x*t.Width),
				Y:      v.Y + float64(y*t.Height),
				Width:  t.Width,
				Height: t.Height,
				SrcX:   sx,
				SrcY:   sy,
			})
		}
	}
	return quads
}
