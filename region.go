package tilemap

// Region is a rectangle of cells in tile coordinates. Operations taking a
// *Region treat nil as the whole layer; regions are clipped to the layer
// so out of range cells are skipped.
type Region struct {
	X, Y          int
	Width, Height int
}

// Rect is shorthand for &Region{x, y, width, height}
func Rect(x, y, width, height int) *Region {
	return &Region{X: x, Y: y, Width: width, Height: height}
}

// grow returns the region expanded by `n` cells on every side
func (r *Region) grow(n int) *Region {
	if r == nil {
		return nil
	}
	return Rect(r.X-n, r.Y-n, r.Width+2*n, r.Height+2*n)
}

// clip intersects `r` with the layer grid, returning the half open bounds
// [x0,x1) x [y0,y1). The result is empty (x0 >= x1 or y0 >= y1) when the
// region lies outside the grid.
func (l *LayerData) clip(r *Region) (x0, y0, x1, y1 int) {
	if r == nil {
		return 0, 0, l.Width, l.Height
	}
	x0, y0 = max(r.X, 0), max(r.Y, 0)
	x1, y1 = min(r.X+r.Width, l.Width), min(r.Y+r.Height, l.Height)
	if r.Width < 0 || r.Height < 0 {
		x1, y1 = x0, y0
	}
	return x0, y0, x1, y1
}

// FilterOptions narrows which tiles region queries report. Nil cells are
// never reported.
type FilterOptions struct {
	// skip tiles holding EmptyIndex
	IsNotEmpty bool

	// only tiles colliding on at least one side
	IsColliding bool

	// only tiles with at least one face set
	HasInterestingFace bool

	// walk bottom-right to top-left instead of row-major
	Reverse bool
}

func (o *FilterOptions) accept(t *Tile) bool {
	if t == nil {
		return false
	}
	if o == nil {
		return true
	}
	if o.IsNotEmpty && t.IsEmpty() {
		return false
	}
	if o.IsColliding && !t.Collides() {
		return false
	}
	if o.HasInterestingFace && !t.HasInterestingFace() {
		return false
	}
	return true
}

func (o *FilterOptions) reverse() bool {
	return o != nil && o.Reverse
}
