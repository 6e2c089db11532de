package tilemap

// EmptyIndex is the index of a tile that is present but holds nothing.
const EmptyIndex = -1

// TileCallback is run by Tile.Interact. `ctx` is the context registered with
// the callback and `other` is whatever interacted with the tile (usually a
// physics body).
type TileCallback func(ctx, other interface{}, t *Tile)

// Tile is one cell of a layer. Its grid position is fixed, only its state
// (index, collision, faces, callback, properties) changes.
type Tile struct {
	// Index into the map's tilesets (a gid), EmptyIndex if blank
	Index int

	// in pixels
	Width  int
	Height int

	// which sides collide
	CollideLeft  bool
	CollideRight bool
	CollideUp    bool
	CollideDown  bool

	// which sides border a non colliding neighbour (interesting faces)
	FaceLeft   bool
	FaceRight  bool
	FaceTop    bool
	FaceBottom bool

	Callback        TileCallback
	CallbackContext interface{}

	Properties *Properties

	layer int // index into Tilemap.Layers, not owned
	x, y  int
}

// NewTile returns a tile at grid position (x,y) of the given layer index.
func NewTile(layer, index, x, y, width, height int) *Tile {
	return &Tile{
		Index:  index,
		Width:  width,
		Height: height,
		layer:  layer,
		x:      x,
		y:      y,
	}
}

// X is the column of the tile
func (t *Tile) X() int { return t.x }

// Y is the row of the tile
func (t *Tile) Y() int { return t.y }

// LayerIndex is the index of the owning layer in its map's layer list.
// Look the layer up via Tilemap.Layer(ByIndex(i)), it may since have been
// removed.
func (t *Tile) LayerIndex() int { return t.layer }

// IsEmpty returns if the tile holds the empty index
func (t *Tile) IsEmpty() bool { return t.Index == EmptyIndex }

// SetCollision sets which sides of the tile collide
func (t *Tile) SetCollision(left, right, up, down bool) {
	t.CollideLeft = left
	t.CollideRight = right
	t.CollideUp = up
	t.CollideDown = down
}

// ResetCollision clears collision on all sides and all faces
func (t *Tile) ResetCollision() {
	t.SetCollision(false, false, false, false)
	t.ResetFaces()
}

// ResetFaces clears all face flags
func (t *Tile) ResetFaces() {
	t.FaceLeft = false
	t.FaceRight = false
	t.FaceTop = false
	t.FaceBottom = false
}

// Collides returns if any side collides
func (t *Tile) Collides() bool {
	return t.CollideLeft || t.CollideRight || t.CollideUp || t.CollideDown
}

// HasInterestingFace returns if any face is set
func (t *Tile) HasInterestingFace() bool {
	return t.FaceLeft || t.FaceRight || t.FaceTop || t.FaceBottom
}

// SetCallback sets (replaces) the interaction callback
func (t *Tile) SetCallback(cb TileCallback, ctx interface{}) {
	t.Callback = cb
	t.CallbackContext = ctx
}

// Interact runs the tile callback (if any) with `other` and reports whether
// one ran.
func (t *Tile) Interact(other interface{}) bool {
	if t.Callback == nil {
		return false
	}
	t.Callback(t.CallbackContext, other, t)
	return true
}

// copyFrom takes over the content (not the position) of `o`.
func (t *Tile) copyFrom(o tileContent) {
	t.Index = o.index
	if o.properties == nil {
		t.Properties = nil
	} else {
		t.Properties = o.properties.Clone()
	}
}

// tileContent is the part of a tile that moves when tiles are copied.
type tileContent struct {
	index      int
	properties *Properties
}

func (t *Tile) content() tileContent {
	return tileContent{index: t.Index, properties: t.Properties}
}
