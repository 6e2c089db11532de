package tilemap

import "math/rand"

// putTileAt sets the index of the tile at (x,y), creating the tile if the
// cell held no data. Returns nil if (x,y) is off the layer.
func putTileAt(index, x, y int, recalculateFaces bool, layer *LayerData) *Tile {
	if !layer.InBounds(x, y) {
		return nil
	}

	t := layer.data[y][x]
	if t == nil {
		t = NewTile(layer.index, index, x, y, layer.TileWidth, layer.TileHeight)
		layer.data[y][x] = t
	}
	layer.setTileIndex(t, index)

	if recalculateFaces {
		calculateFacesAt(x, y, layer)
	}
	return t
}

// removeTileAt empties the cell at (x,y), either clearing it to no data
// (`replaceWithNull`) or setting an empty tile. Returns the tile that was
// there (or nil).
func removeTileAt(x, y int, replaceWithNull, recalculateFaces bool, layer *LayerData) *Tile {
	if !layer.InBounds(x, y) {
		return nil
	}

	t := layer.data[y][x]
	if t == nil {
		return nil
	}

	if replaceWithNull {
		layer.data[y][x] = nil
	} else {
		layer.data[y][x] = NewTile(layer.index, EmptyIndex, x, y, layer.TileWidth, layer.TileHeight)
	}

	// neighbours of a removed colliding tile need new faces
	if recalculateFaces && t.Collides() {
		calculateFacesAt(x, y, layer)
	}
	return t
}

// copyTiles copies the tiles of `src` so that src's top left lands on
// (destX,destY). The source is read into a buffer first so overlapping
// rectangles copy correctly. Cells off the layer or holding no data are skipped.
func copyTiles(src *Region, destX, destY int, recalculateFaces bool, layer *LayerData) {
	if src == nil {
		src = Rect(0, 0, layer.Width, layer.Height)
	}

	type cell struct {
		x, y    int
		content tileContent
	}
	buffer := []cell{}
	for _, t := range getTilesWithin(src, nil, layer) {
		buffer = append(buffer, cell{x: t.x, y: t.y, content: t.content()})
	}

	dx, dy := destX-src.X, destY-src.Y
	for _, c := range buffer {
		t := layer.TileAt(c.x+dx, c.y+dy)
		if t == nil {
			continue
		}
		t.copyFrom(c.content)
		layer.syncCollision(t)
	}

	if recalculateFaces {
		calculateFacesWithin(Rect(destX, destY, src.Width, src.Height), layer)
	}
}

// fill sets every tile in `r` to `index`.
func fill(index int, r *Region, recalculateFaces bool, layer *LayerData) {
	for _, t := range getTilesWithin(r, nil, layer) {
		layer.setTileIndex(t, index)
	}
	if recalculateFaces {
		calculateFacesWithin(r, layer)
	}
}

// randomize sets every tile in `r` to an index picked uniformly from
// `indices`. With no indices the distinct indices already in `r` are used.
func randomize(r *Region, indices []int, rng *rand.Rand, layer *LayerData) {
	tiles := getTilesWithin(r, nil, layer)

	if len(indices) == 0 {
		seen := map[int]bool{}
		for _, t := range tiles {
			if !seen[t.Index] {
				seen[t.Index] = true
				indices = append(indices, t.Index)
			}
		}
	}
	if len(indices) == 0 {
		return
	}

	for _, t := range tiles {
		layer.setTileIndex(t, indices[rng.Intn(len(indices))])
	}
	calculateFacesWithin(r, layer)
}

// shuffle permutes the indices within `r`.
func shuffle(r *Region, rng *rand.Rand, layer *LayerData) {
	tiles := getTilesWithin(r, nil, layer)

	indices := make([]int, len(tiles))
	for i, t := range tiles {
		indices[i] = t.Index
	}
	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	for i, t := range tiles {
		layer.setTileIndex(t, indices[i])
	}
	calculateFacesWithin(r, layer)
}

// swapByIndex turns tiles holding `a` into `b` & vice versa.
func swapByIndex(a, b int, r *Region, layer *LayerData) {
	for _, t := range getTilesWithin(r, nil, layer) {
		switch t.Index {
		case a:
			layer.setTileIndex(t, b)
		case b:
			layer.setTileIndex(t, a)
		}
	}
	calculateFacesWithin(r, layer)
}

// replaceByIndex turns tiles holding `find` into `replace`.
func replaceByIndex(find, replace int, r *Region, layer *LayerData) {
	for _, t := range getTilesWithin(r, nil, layer) {
		if t.Index == find {
			layer.setTileIndex(t, replace)
		}
	}
	calculateFacesWithin(r, layer)
}
