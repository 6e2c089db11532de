package tilemap

import "fmt"

type refKind int

const (
	refCurrent refKind = iota
	refName
	refIndex
	refView
)

// LayerRef picks a layer of a Tilemap. The zero value (Current) means the
// map's current layer.
type LayerRef struct {
	kind  refKind
	name  string
	index int
	view  *LayerView
}

// Current refers to the map's current layer
var Current = LayerRef{}

// ByName refers to the first layer called `name`
func ByName(name string) LayerRef {
	return LayerRef{kind: refName, name: name}
}

// ByIndex refers to the layer at position `i` of the layer list
func ByIndex(i int) LayerRef {
	return LayerRef{kind: refIndex, index: i}
}

// ByView refers to the layer a view was created for
func ByView(v *LayerView) LayerRef {
	return LayerRef{kind: refView, view: v}
}

func (r LayerRef) String() string {
	switch r.kind {
	case refName:
		return fmt.Sprintf("name %q", r.name)
	case refIndex:
		return fmt.Sprintf("index %d", r.index)
	case refView:
		if r.view == nil {
			return "view <nil>"
		}
		return fmt.Sprintf("view %d", r.view.ID)
	}
	return "current layer"
}
