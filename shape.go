package tilemap

// Shape is an area in world coordinates used by region queries.
type Shape interface {
	// Bounds is the smallest Rectangle holding the shape
	Bounds() Rectangle

	// Contains returns if the world point (x,y) is inside the shape
	Contains(x, y float64) bool
}

// Rectangle is an axis aligned rectangle in world pixels.
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

func (r Rectangle) Bounds() Rectangle { return r }

func (r Rectangle) Contains(x, y float64) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Circle in world pixels.
type Circle struct {
	X, Y   float64
	Radius float64
}

func (c Circle) Bounds() Rectangle {
	return Rectangle{X: c.X - c.Radius, Y: c.Y - c.Radius, Width: c.Radius * 2, Height: c.Radius * 2}
}

func (c Circle) Contains(x, y float64) bool {
	if c.Radius <= 0 {
		return false
	}
	dx, dy := x-c.X, y-c.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}
