package tilemap

// Tileset maps a contiguous gid range onto tiles cut from one image.
type Tileset struct {
	Name     string
	FirstGID int

	// in pixels
	TileWidth  int
	TileHeight int
	Margin     int
	Spacing    int

	// Image may be nil until bound via Tilemap.RegisterTilesetImage
	Image Texture

	// Properties of the tileset itself
	Properties *Properties

	// properties per tile, keyed by tile id (gid - FirstGID)
	tileProperties map[int]*Properties

	// derived from the image once set
	rows      int
	columns   int
	total     int
	texCoords [][2]int
}

// NewTileset makes a new tileset starting at `firstGID`.
func NewTileset(name string, firstGID, tileWidth, tileHeight, margin, spacing int) *Tileset {
	return &Tileset{
		Name:           name,
		FirstGID:       firstGID,
		TileWidth:      tileWidth,
		TileHeight:     tileHeight,
		Margin:         margin,
		Spacing:        spacing,
		Properties:     NewProperties(),
		tileProperties: map[int]*Properties{},
	}
}

// SetImage binds an image & recomputes the tile grid it holds
func (t *Tileset) SetImage(tex Texture) {
	t.Image = tex
	t.updateTileData()
}

// SetTileSize sets the size of a tile (in px) & recomputes the tile grid
func (t *Tileset) SetTileSize(width, height int) {
	if width > 0 {
		t.TileWidth = width
	}
	if height > 0 {
		t.TileHeight = height
	}
	t.updateTileData()
}

// SetSpacing sets the margin around the image & the spacing between tiles
func (t *Tileset) SetSpacing(margin, spacing int) {
	t.Margin = margin
	t.Spacing = spacing
	t.updateTileData()
}

// Rows is the number of tile rows in the bound image
func (t *Tileset) Rows() int { return t.rows }

// Columns is the number of tile columns in the bound image
func (t *Tileset) Columns() int { return t.columns }

// Total is the number of tiles in the bound image
func (t *Tileset) Total() int { return t.total }

// ContainsTileIndex returns if gid `index` belongs to this tileset
func (t *Tileset) ContainsTileIndex(index int) bool {
	return index >= t.FirstGID && index < t.FirstGID+t.total
}

// TileTextureCoordinates returns the top left pixel of the tile with gid
// `index` inside the tileset image.
func (t *Tileset) TileTextureCoordinates(index int) (x, y int, ok bool) {
	if !t.ContainsTileIndex(index) {
		return 0, 0, false
	}
	c := t.texCoords[index-t.FirstGID]
	return c[0], c[1], true
}

// TileProperties returns properties of the tile with gid `index` (or nil)
func (t *Tileset) TileProperties(index int) *Properties {
	return t.tileProperties[index-t.FirstGID]
}

// SetTileProperties sets properties on the tile with gid `index`
func (t *Tileset) SetTileProperties(index int, props *Properties) {
	if t.tileProperties == nil {
		t.tileProperties = map[int]*Properties{}
	}
	t.tileProperties[index-t.FirstGID] = props
}

// updateTileData works out how many tiles fit in the image & where each one is.
func (t *Tileset) updateTileData() {
	t.rows, t.columns, t.total = 0, 0, 0
	t.texCoords = nil
	if t.Image == nil || t.TileWidth <= 0 || t.TileHeight <= 0 {
		return
	}

	w, h := t.Image.Size()
	rows := (h - t.Margin*2 + t.Spacing) / (t.TileHeight + t.Spacing)
	cols := (w - t.Margin*2 + t.Spacing) / (t.TileWidth + t.Spacing)
	if rows <= 0 || cols <= 0 {
		return
	}

	t.rows, t.columns, t.total = rows, cols, rows*cols
	t.texCoords = make([][2]int, 0, t.total)

	ty := t.Margin
	for row := 0; row < rows; row++ {
		tx := t.Margin
		for col := 0; col < cols; col++ {
			t.texCoords = append(t.texCoords, [2]int{tx, ty})
			tx += t.TileWidth + t.Spacing
		}
		ty += t.TileHeight + t.Spacing
	}
}
