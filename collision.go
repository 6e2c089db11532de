package tilemap

// calculateFaces sets the face flags of a single tile from its neighbours.
// A colliding tile has a face on every side not shared with another colliding
// tile; cells off the grid count as non colliding.
func calculateFaces(t *Tile, layer *LayerData) {
	if !t.Collides() {
		t.ResetFaces()
		return
	}
	collides := func(x, y int) bool {
		n := layer.TileAt(x, y)
		return n != nil && n.Collides()
	}
	t.FaceTop = !collides(t.x, t.y-1)
	t.FaceBottom = !collides(t.x, t.y+1)
	t.FaceLeft = !collides(t.x-1, t.y)
	t.FaceRight = !collides(t.x+1, t.y)
}

// calculateFacesWithin recalculates faces for `r` plus a one cell margin,
// since a change in `r` alters the faces of the tiles bordering it.
func calculateFacesWithin(r *Region, layer *LayerData) {
	for _, t := range getTilesWithin(r.grow(1), nil, layer) {
		calculateFaces(t, layer)
	}
}

// calculateFacesAt recalculates faces of the tile at (x,y) & its neighbours.
func calculateFacesAt(x, y int, layer *LayerData) {
	calculateFacesWithin(Rect(x, y, 1, 1), layer)
}

// setCollision marks (or unmarks) tiles holding any of `indices` as colliding.
func setCollision(indices []int, collides, recalculateFaces bool, layer *LayerData) {
	set := map[int]bool{}
	for _, i := range indices {
		set[i] = true
	}
	updateCollision(func(i int) bool { return set[i] }, indices, collides, recalculateFaces, layer)
}

// setCollisionBetween marks tiles holding an index in [start,stop] as colliding.
func setCollisionBetween(start, stop int, collides, recalculateFaces bool, layer *LayerData) {
	if start > stop {
		return
	}
	indices := make([]int, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		indices = append(indices, i)
	}
	updateCollision(func(i int) bool { return i >= start && i <= stop }, indices, collides, recalculateFaces, layer)
}

// setCollisionByExclusion marks every tile not holding one of `indices` as
// colliding. The empty index is never made to collide.
func setCollisionByExclusion(indices []int, collides, recalculateFaces bool, layer *LayerData) {
	excluded := map[int]bool{EmptyIndex: true}
	for _, i := range indices {
		excluded[i] = true
	}

	matched := []int{}
	seen := map[int]bool{}
	for _, t := range getTilesWithin(nil, nil, layer) {
		if !excluded[t.Index] && !seen[t.Index] {
			seen[t.Index] = true
			matched = append(matched, t.Index)
		}
	}
	updateCollision(func(i int) bool { return seen[i] }, matched, collides, recalculateFaces, layer)
}

// updateCollision records `indices` in the layer's collision set & updates
// every tile matching `match`.
func updateCollision(match func(int) bool, indices []int, collides, recalculateFaces bool, layer *LayerData) {
	for _, i := range indices {
		if collides {
			layer.collideIndexes.Put(i)
		} else {
			layer.collideIndexes.Remove(i)
		}
	}

	for _, t := range getTilesWithin(nil, nil, layer) {
		if !match(t.Index) {
			continue
		}
		if collides {
			t.SetCollision(true, true, true, true)
		} else {
			t.ResetCollision()
		}
	}

	if recalculateFaces {
		calculateFacesWithin(nil, layer)
	}
}

// setTileIndexCallback sets `cb` on every tile holding one of `indices`,
// replacing any callback already set. A nil `cb` clears callbacks.
func setTileIndexCallback(indices []int, cb TileCallback, ctx interface{}, layer *LayerData) {
	set := map[int]bool{}
	for _, i := range indices {
		set[i] = true
	}
	for _, t := range getTilesWithin(nil, nil, layer) {
		if set[t.Index] {
			t.SetCallback(cb, ctx)
		}
	}
}

// setTileLocationCallback sets `cb` on every tile within `r`.
func setTileLocationCallback(r *Region, cb TileCallback, ctx interface{}, layer *LayerData) {
	for _, t := range getTilesWithin(r, nil, layer) {
		t.SetCallback(cb, ctx)
	}
}
