/* file exposes the tile operations on a Tilemap. Each resolves its LayerRef
then hands the layer to the matching grid operation.
*/
package tilemap

// Copy copies the tiles of region `src` so its top left lands on
// (destX,destY). Overlapping source & destination are handled.
func (m *Tilemap) Copy(src *Region, destX, destY int, recalculateFaces bool, ref LayerRef) error {
	l, err := m.mutableLayer("Copy", ref)
	if err != nil {
		return err
	}
	copyTiles(src, destX, destY, recalculateFaces, l)
	return nil
}

// Fill sets every tile in `r` to `index`
func (m *Tilemap) Fill(index int, r *Region, recalculateFaces bool, ref LayerRef) error {
	l, err := m.mutableLayer("Fill", ref)
	if err != nil {
		return err
	}
	fill(index, r, recalculateFaces, l)
	return nil
}

// Randomize sets every tile in `r` to an index picked at random from
// `indices`, or from the indices already in `r` when none are given.
func (m *Tilemap) Randomize(r *Region, indices []int, ref LayerRef) error {
	l, err := m.mutableLayer("Randomize", ref)
	if err != nil {
		return err
	}
	randomize(r, indices, m.rng, l)
	return nil
}

// Shuffle randomly rearranges the tiles in `r`
func (m *Tilemap) Shuffle(r *Region, ref LayerRef) error {
	l, err := m.mutableLayer("Shuffle", ref)
	if err != nil {
		return err
	}
	shuffle(r, m.rng, l)
	return nil
}

// SwapByIndex turns tiles holding index `a` into `b` and vice versa
func (m *Tilemap) SwapByIndex(a, b int, r *Region, ref LayerRef) error {
	l, err := m.mutableLayer("SwapByIndex", ref)
	if err != nil {
		return err
	}
	swapByIndex(a, b, r, l)
	return nil
}

// ReplaceByIndex turns tiles holding index `find` into `replace`
func (m *Tilemap) ReplaceByIndex(find, replace int, r *Region, ref LayerRef) error {
	l, err := m.mutableLayer("ReplaceByIndex", ref)
	if err != nil {
		return err
	}
	replaceByIndex(find, replace, r, l)
	return nil
}

// PutTileAt sets the tile index at (x,y). Returns nil if (x,y) is off the layer.
func (m *Tilemap) PutTileAt(index, x, y int, recalculateFaces bool, ref LayerRef) (*Tile, error) {
	l, err := m.mutableLayer("PutTileAt", ref)
	if err != nil {
		return nil, err
	}
	return putTileAt(index, x, y, recalculateFaces, l), nil
}

// PutTileAtWorldXY sets the tile index at a world position
func (m *Tilemap) PutTileAtWorldXY(index int, worldX, worldY float64, recalculateFaces bool, cam Camera, ref LayerRef) (*Tile, error) {
	l, err := m.mutableLayer("PutTileAtWorldXY", ref)
	if err != nil {
		return nil, err
	}
	x, y := worldToTileXY(worldX, worldY, cam, l)
	return putTileAt(index, x, y, recalculateFaces, l), nil
}

// RemoveTileAt empties the cell at (x,y) & returns the tile that was there.
// With `replaceWithNull` the cell is left holding no data.
func (m *Tilemap) RemoveTileAt(x, y int, replaceWithNull, recalculateFaces bool, ref LayerRef) (*Tile, error) {
	l, err := m.mutableLayer("RemoveTileAt", ref)
	if err != nil {
		return nil, err
	}
	return removeTileAt(x, y, replaceWithNull, recalculateFaces, l), nil
}

// RemoveTileAtWorldXY empties the cell at a world position
func (m *Tilemap) RemoveTileAtWorldXY(worldX, worldY float64, replaceWithNull, recalculateFaces bool, cam Camera, ref LayerRef) (*Tile, error) {
	l, err := m.mutableLayer("RemoveTileAtWorldXY", ref)
	if err != nil {
		return nil, err
	}
	x, y := worldToTileXY(worldX, worldY, cam, l)
	return removeTileAt(x, y, replaceWithNull, recalculateFaces, l), nil
}

// GetTileAt returns the tile at (x,y). Empty tiles are reported as nil
// unless `nonNull` is set.
func (m *Tilemap) GetTileAt(x, y int, nonNull bool, ref LayerRef) (*Tile, error) {
	l, err := m.layer("GetTileAt", ref)
	if err != nil {
		return nil, err
	}
	return getTileAt(x, y, nonNull, l), nil
}

// GetTileAtWorldXY returns the tile at a world position
func (m *Tilemap) GetTileAtWorldXY(worldX, worldY float64, nonNull bool, cam Camera, ref LayerRef) (*Tile, error) {
	l, err := m.layer("GetTileAtWorldXY", ref)
	if err != nil {
		return nil, err
	}
	x, y := worldToTileXY(worldX, worldY, cam, l)
	return getTileAt(x, y, nonNull, l), nil
}

// HasTileAt returns if there is a non empty tile at (x,y)
func (m *Tilemap) HasTileAt(x, y int, ref LayerRef) (bool, error) {
	l, err := m.layer("HasTileAt", ref)
	if err != nil {
		return false, err
	}
	return hasTileAt(x, y, l), nil
}

// HasTileAtWorldXY returns if there is a non empty tile at a world position
func (m *Tilemap) HasTileAtWorldXY(worldX, worldY float64, cam Camera, ref LayerRef) (bool, error) {
	l, err := m.layer("HasTileAtWorldXY", ref)
	if err != nil {
		return false, err
	}
	x, y := worldToTileXY(worldX, worldY, cam, l)
	return hasTileAt(x, y, l), nil
}

// GetTilesWithin returns the tiles in `r` passing `opts`, row-major.
func (m *Tilemap) GetTilesWithin(r *Region, opts *FilterOptions, ref LayerRef) ([]*Tile, error) {
	l, err := m.layer("GetTilesWithin", ref)
	if err != nil {
		return nil, err
	}
	return getTilesWithin(r, opts, l), nil
}

// GetTilesWithinShape returns the tiles whose centre lies within `shape`
func (m *Tilemap) GetTilesWithinShape(shape Shape, opts *FilterOptions, cam Camera, ref LayerRef) ([]*Tile, error) {
	l, err := m.layer("GetTilesWithinShape", ref)
	if err != nil {
		return nil, err
	}
	return getTilesWithinShape(shape, opts, cam, l), nil
}

// GetTilesWithinWorldXY returns the tiles overlapping a world rectangle
func (m *Tilemap) GetTilesWithinWorldXY(worldX, worldY, width, height float64, opts *FilterOptions, cam Camera, ref LayerRef) ([]*Tile, error) {
	l, err := m.layer("GetTilesWithinWorldXY", ref)
	if err != nil {
		return nil, err
	}
	return getTilesWithinWorldXY(worldX, worldY, width, height, opts, cam, l), nil
}

// ForEachTile calls `fn` for each tile in `r` passing `opts`
func (m *Tilemap) ForEachTile(fn func(*Tile), r *Region, opts *FilterOptions, ref LayerRef) error {
	l, err := m.layer("ForEachTile", ref)
	if err != nil {
		return err
	}
	forEachTile(fn, r, opts, l)
	return nil
}

// FilterTiles returns the tiles in `r` passing `opts` for which `keep` is true
func (m *Tilemap) FilterTiles(keep func(*Tile) bool, r *Region, opts *FilterOptions, ref LayerRef) ([]*Tile, error) {
	l, err := m.layer("FilterTiles", ref)
	if err != nil {
		return nil, err
	}
	return filterTiles(keep, r, opts, l), nil
}

// FindByIndex returns the first tile holding `index` after skipping `skip`
// matches, searching from the bottom right when `reverse` is set. Returns
// nil if there is no such tile.
func (m *Tilemap) FindByIndex(index, skip int, reverse bool, ref LayerRef) (*Tile, error) {
	l, err := m.layer("FindByIndex", ref)
	if err != nil {
		return nil, err
	}
	return findByIndex(index, skip, reverse, l), nil
}

// CalculateFacesWithin recalculates the face flags of the tiles in `r`
func (m *Tilemap) CalculateFacesWithin(r *Region, ref LayerRef) error {
	l, err := m.layer("CalculateFacesWithin", ref)
	if err != nil {
		return err
	}
	calculateFacesWithin(r, l)
	return nil
}

// SetCollision sets tiles holding any of `indices` to collide (or not)
func (m *Tilemap) SetCollision(indices []int, collides, recalculateFaces bool, ref LayerRef) error {
	l, err := m.layer("SetCollision", ref)
	if err != nil {
		return err
	}
	setCollision(indices, collides, recalculateFaces, l)
	return nil
}

// SetCollisionBetween sets tiles holding an index in [start,stop] to collide
func (m *Tilemap) SetCollisionBetween(start, stop int, collides, recalculateFaces bool, ref LayerRef) error {
	l, err := m.layer("SetCollisionBetween", ref)
	if err != nil {
		return err
	}
	setCollisionBetween(start, stop, collides, recalculateFaces, l)
	return nil
}

// SetCollisionByExclusion sets every non empty tile not holding one of
// `indices` to collide
func (m *Tilemap) SetCollisionByExclusion(indices []int, collides, recalculateFaces bool, ref LayerRef) error {
	l, err := m.layer("SetCollisionByExclusion", ref)
	if err != nil {
		return err
	}
	setCollisionByExclusion(indices, collides, recalculateFaces, l)
	return nil
}

// SetTileIndexCallback sets `cb` on every tile holding one of `indices`
func (m *Tilemap) SetTileIndexCallback(indices []int, cb TileCallback, ctx interface{}, ref LayerRef) error {
	l, err := m.layer("SetTileIndexCallback", ref)
	if err != nil {
		return err
	}
	setTileIndexCallback(indices, cb, ctx, l)
	return nil
}

// SetTileLocationCallback sets `cb` on every tile in `r`
func (m *Tilemap) SetTileLocationCallback(r *Region, cb TileCallback, ctx interface{}, ref LayerRef) error {
	l, err := m.layer("SetTileLocationCallback", ref)
	if err != nil {
		return err
	}
	setTileLocationCallback(r, cb, ctx, l)
	return nil
}

// WorldToTileX converts a world x into a tile column of layer `ref`
func (m *Tilemap) WorldToTileX(worldX float64, snapToFloor bool, cam Camera, ref LayerRef) (float64, error) {
	l, err := m.layer("WorldToTileX", ref)
	if err != nil {
		return 0, err
	}
	return worldToTileX(worldX, snapToFloor, cam, l), nil
}

// WorldToTileY converts a world y into a tile row of layer `ref`
func (m *Tilemap) WorldToTileY(worldY float64, snapToFloor bool, cam Camera, ref LayerRef) (float64, error) {
	l, err := m.layer("WorldToTileY", ref)
	if err != nil {
		return 0, err
	}
	return worldToTileY(worldY, snapToFloor, cam, l), nil
}

// WorldToTileXY converts a world position into tile coordinates of layer `ref`
func (m *Tilemap) WorldToTileXY(worldX, worldY float64, snapToFloor bool, cam Camera, ref LayerRef) (float64, float64, error) {
	l, err := m.layer("WorldToTileXY", ref)
	if err != nil {
		return 0, 0, err
	}
	return worldToTileX(worldX, snapToFloor, cam, l), worldToTileY(worldY, snapToFloor, cam, l), nil
}

// TileToWorldX returns the world x of the left edge of column `tileX`
func (m *Tilemap) TileToWorldX(tileX int, cam Camera, ref LayerRef) (float64, error) {
	l, err := m.layer("TileToWorldX", ref)
	if err != nil {
		return 0, err
	}
	return tileToWorldX(tileX, cam, l), nil
}

// TileToWorldY returns the world y of the top edge of row `tileY`
func (m *Tilemap) TileToWorldY(tileY int, cam Camera, ref LayerRef) (float64, error) {
	l, err := m.layer("TileToWorldY", ref)
	if err != nil {
		return 0, err
	}
	return tileToWorldY(tileY, cam, l), nil
}

// TileToWorldXY returns the world position of the top left of tile (tileX,tileY)
func (m *Tilemap) TileToWorldXY(tileX, tileY int, cam Camera, ref LayerRef) (float64, float64, error) {
	l, err := m.layer("TileToWorldXY", ref)
	if err != nil {
		return 0, 0, err
	}
	return tileToWorldX(tileX, cam, l), tileToWorldY(tileY, cam, l), nil
}
