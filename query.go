package tilemap

import "math"

// getTileAt returns the tile at (x,y). Empty tiles are reported as nil
// unless `nonNull` is set.
func getTileAt(x, y int, nonNull bool, layer *LayerData) *Tile {
	t := layer.TileAt(x, y)
	if t == nil {
		return nil
	}
	if t.IsEmpty() && !nonNull {
		return nil
	}
	return t
}

// hasTileAt returns if there is a non empty tile at (x,y)
func hasTileAt(x, y int, layer *LayerData) bool {
	t := layer.TileAt(x, y)
	return t != nil && !t.IsEmpty()
}

// getTilesWithin returns the tiles inside `r` that pass `opts`.
func getTilesWithin(r *Region, opts *FilterOptions, layer *LayerData) []*Tile {
	x0, y0, x1, y1 := layer.clip(r)
	tiles := []*Tile{}
	if x0 >= x1 || y0 >= y1 {
		return tiles
	}

	if opts.reverse() {
		for y := y1 - 1; y >= y0; y-- {
			for x := x1 - 1; x >= x0; x-- {
				if t := layer.data[y][x]; opts.accept(t) {
					tiles = append(tiles, t)
				}
			}
		}
		return tiles
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if t := layer.data[y][x]; opts.accept(t) {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// getTilesWithinWorldXY returns the tiles overlapping the world rectangle.
func getTilesWithinWorldXY(worldX, worldY, width, height float64, opts *FilterOptions, cam Camera, layer *LayerData) []*Tile {
	x0 := int(worldToTileX(worldX, true, cam, layer))
	y0 := int(worldToTileY(worldY, true, cam, layer))

	// the far edge rounds up so partially covered tiles count
	x1 := int(math.Ceil(worldToTileX(worldX+width, false, cam, layer)))
	y1 := int(math.Ceil(worldToTileY(worldY+height, false, cam, layer)))

	return getTilesWithin(Rect(x0, y0, x1-x0, y1-y0), opts, layer)
}

// getTilesWithinShape returns the tiles whose centre lies inside `shape`.
// Tiles outside the shape's bounding box are skipped before the precise test.
func getTilesWithinShape(shape Shape, opts *FilterOptions, cam Camera, layer *LayerData) []*Tile {
	if shape == nil {
		return []*Tile{}
	}
	b := shape.Bounds()

	x0 := int(worldToTileX(b.X, true, cam, layer))
	y0 := int(worldToTileY(b.Y, true, cam, layer))
	x1 := int(math.Ceil(worldToTileX(b.X+b.Width, false, cam, layer)))
	y1 := int(math.Ceil(worldToTileY(b.Y+b.Height, false, cam, layer)))

	candidates := getTilesWithin(Rect(x0, y0, max(x1-x0, 1), max(y1-y0, 1)), opts, layer)

	tiles := []*Tile{}
	for _, t := range candidates {
		cx := tileToWorldX(t.x, cam, layer) + float64(t.Width)/2
		cy := tileToWorldY(t.y, cam, layer) + float64(t.Height)/2
		if shape.Contains(cx, cy) {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// forEachTile calls `fn` for every tile in `r` passing `opts`.
func forEachTile(fn func(*Tile), r *Region, opts *FilterOptions, layer *LayerData) {
	for _, t := range getTilesWithin(r, opts, layer) {
		fn(t)
	}
}

// filterTiles returns the tiles in `r` passing `opts` for which `keep` is true.
func filterTiles(keep func(*Tile) bool, r *Region, opts *FilterOptions, layer *LayerData) []*Tile {
	out := []*Tile{}
	for _, t := range getTilesWithin(r, opts, layer) {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// findByIndex returns the first tile holding `index`, after skipping `skip`
// matches. Search runs row-major from the top left, or from the bottom right
// when `reverse` is set.
func findByIndex(index, skip int, reverse bool, layer *LayerData) *Tile {
	count := 0
	for _, t := range getTilesWithin(nil, &FilterOptions{Reverse: reverse}, layer) {
		if t.Index != index {
			continue
		}
		if count == skip {
			return t
		}
		count++
	}
	return nil
}
