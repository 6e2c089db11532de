package tilemap

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// LayerData is one named grid of tiles. Its dimensions are fixed once built.
// A nil cell means "no data" & is distinct from a tile holding EmptyIndex.
type LayerData struct {
	Name string

	// in tiles
	Width  int
	Height int

	// in pixels
	TileWidth  int
	TileHeight int

	Visible    bool
	Opacity    float64
	Properties *Properties

	index          int // position in the owning map's layer list
	data           [][]*Tile
	collideIndexes mapset.Set[int]
	view           *LayerView
}

func newLayerData(name string, width, height, tileWidth, tileHeight int) *LayerData {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	l := &LayerData{
		Name:           name,
		Width:          width,
		Height:         height,
		TileWidth:      tileWidth,
		TileHeight:     tileHeight,
		Visible:        true,
		Opacity:        1,
		Properties:     NewProperties(),
		data:           make([][]*Tile, height),
		collideIndexes: mapset.New[int](),
	}
	for y := range l.data {
		l.data[y] = make([]*Tile, width)
	}
	return l
}

// NewLayerData builds a layer from row-major tile `indices`.
// Negative indices (and cells past the end of `indices`) become empty tiles,
// or nil cells when `insertNull` is set.
func NewLayerData(name string, width, height, tileWidth, tileHeight int, indices []int, insertNull bool) *LayerData {
	l := newLayerData(name, width, height, tileWidth, tileHeight)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			i := y*l.Width + x
			index := EmptyIndex
			if i < len(indices) && indices[i] >= 0 {
				index = indices[i]
			}
			if index == EmptyIndex && insertNull {
				continue
			}
			l.data[y][x] = NewTile(l.index, index, x, y, tileWidth, tileHeight)
		}
	}
	return l
}

// NewBlankLayerData builds a layer where every cell holds an empty tile.
func NewBlankLayerData(name string, width, height, tileWidth, tileHeight int) *LayerData {
	return NewLayerData(name, width, height, tileWidth, tileHeight, nil, false)
}

// Index is the position of this layer in its map's layer list
func (l *LayerData) Index() int { return l.index }

// setIndex records the layer's position & updates the back reference of
// every tile.
func (l *LayerData) setIndex(i int) {
	l.index = i
	for _, row := range l.data {
		for _, t := range row {
			if t != nil {
				t.layer = i
			}
		}
	}
}

// InBounds returns if (x,y) is a cell of this layer
func (l *LayerData) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// TileAt returns the tile at (x,y) or nil if out of bounds / no data
func (l *LayerData) TileAt(x, y int) *Tile {
	if !l.InBounds(x, y) {
		return nil
	}
	return l.data[y][x]
}

// Indices returns a row-major copy of the grid's tile indices.
// Nil cells are reported as EmptyIndex.
func (l *LayerData) Indices() []int {
	out := make([]int, 0, l.Width*l.Height)
	for _, row := range l.data {
		for _, t := range row {
			if t == nil {
				out = append(out, EmptyIndex)
			} else {
				out = append(out, t.Index)
			}
		}
	}
	return out
}

// View returns the view bound to this layer (or nil)
func (l *LayerData) View() *LayerView { return l.view }

func (l *LayerData) attach(v *LayerView) error {
	if l.view != nil {
		return fmt.Errorf("%w: %q", ErrLayerAlreadyBound, l.Name)
	}
	l.view = v
	return nil
}

func (l *LayerData) detach(v *LayerView) {
	if l.view == v {
		l.view = nil
	}
}

// mutable returns if tiles of this layer may be edited
func (l *LayerData) mutable() bool {
	return l.view == nil || l.view.Mutable()
}

// Collides returns if tiles with `index` are set to collide
func (l *LayerData) Collides(index int) bool {
	return l.collideIndexes.Has(index)
}

// CollisionIndexes returns the colliding tile indices, sorted.
func (l *LayerData) CollisionIndexes() []int {
	out := make([]int, 0, l.collideIndexes.Size())
	l.collideIndexes.Each(func(i int) {
		out = append(out, i)
	})
	sort.Ints(out)
	return out
}

// setTileIndex sets a tile's index & syncs its collision with the layer's
// collision set.
func (l *LayerData) setTileIndex(t *Tile, index int) {
	t.Index = index
	l.syncCollision(t)
}

func (l *LayerData) syncCollision(t *Tile) {
	if l.collideIndexes.Has(t.Index) {
		t.SetCollision(true, true, true, true)
	} else {
		t.ResetCollision()
	}
}

func (l *LayerData) setTileSize(width, height int) {
	l.TileWidth = width
	l.TileHeight = height
	for _, row := range l.data {
		for _, t := range row {
			if t != nil {
				t.Width = width
				t.Height = height
			}
		}
	}
}

func (l *LayerData) clear() {
	l.data = nil
	l.Width, l.Height = 0, 0
	l.view = nil
}
