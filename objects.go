package tilemap

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ObjectPlacement is one object of an object group, as placed in the map
// editor. ID, GID & Name are the zero value when not set; at least one is.
type ObjectPlacement struct {
	ID   int
	GID  int
	Name string
	Type string

	// position of the bottom left corner, in world pixels
	X, Y float64

	// zero when not set
	Width, Height float64

	// clockwise, in degrees
	Rotation float64

	// nil when not set
	Visible           *bool
	FlippedHorizontal *bool
	FlippedVertical   *bool

	Properties *Properties
}

// ObjectMatch selects placements of an object group. MatchID compares
// against ID or GID, MatchName against Name.
type ObjectMatch struct {
	id     int
	name   string
	byName bool
}

// MatchID matches objects whose id or gid equals `id`
func MatchID(id int) ObjectMatch {
	return ObjectMatch{id: id}
}

// MatchName matches objects called `name`
func MatchName(name string) ObjectMatch {
	return ObjectMatch{name: name, byName: true}
}

func (o ObjectMatch) matches(p *ObjectPlacement) bool {
	if o.byName {
		return p.Name != "" && p.Name == o.name
	}
	return (p.GID != 0 && p.GID == o.id) || (p.ID != 0 && p.ID == o.id)
}

func (o ObjectMatch) String() string {
	if o.byName {
		return fmt.Sprintf("name %q", o.name)
	}
	return fmt.Sprintf("id %d", o.id)
}

// rotate turns the vector (x,y) by `angle` radians
func rotate(x, y, angle float64) (float64, float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	return x*c - y*s, x*s + y*c
}

// InstantiateFromObjects creates an entity for every object of `group`
// matching `match`, in group order.
//
// Each entity is built from a copy of `cfg` merged with the object's
// properties (object properties win) & positioned at the object, so editor
// properties configure the entity. Objects are anchored bottom left in the
// editor so the entity is shifted to match its own origin, taking the object
// rotation into account. `scene` defaults to the map's scene.
func (m *Tilemap) InstantiateFromObjects(group string, match ObjectMatch, cfg *Properties, scene Scene) ([]Entity, error) {
	if scene == nil {
		scene = m.scene
	}

	objs, ok := m.objects[group]
	if !ok {
		m.log.Warn("cannot create from objects: invalid object group", zap.String("group", group))
		return []Entity{}, fmt.Errorf("%w: %q", ErrObjectGroupNotFound, group)
	}
	if scene == nil {
		m.log.Warn("cannot create from objects: no scene", zap.String("group", group))
		return []Entity{}, fmt.Errorf("create from objects %q: %w", group, ErrNoScene)
	}

	entities := []Entity{}
	for _, obj := range objs {
		if !match.matches(obj) {
			continue
		}

		c := cfg.Clone().Merge(obj.Properties)
		c.SetFloat("x", obj.X)
		c.SetFloat("y", obj.Y)

		e := scene.Entities().Construct(c)
		e.SetName(obj.Name)

		w, h := e.DisplaySize()
		if obj.Width != 0 || obj.Height != 0 {
			if obj.Width != 0 {
				w = obj.Width
			}
			if obj.Height != 0 {
				h = obj.Height
			}
			e.SetDisplaySize(w, h)
		}

		ox, oy := e.Origin()
		offX, offY := ox*w, (oy-1)*h

		if obj.Rotation != 0 {
			angle := obj.Rotation * math.Pi / 180
			offX, offY = rotate(offX, offY, angle)
			e.SetRotation(angle)
		}

		x, y := e.Position()
		e.SetPosition(x+offX, y+offY)

		if obj.FlippedHorizontal != nil || obj.FlippedVertical != nil {
			e.SetFlip(isTrue(obj.FlippedHorizontal), isTrue(obj.FlippedVertical))
		}
		if obj.Visible != nil && !*obj.Visible {
			e.SetVisible(false)
		}

		entities = append(entities, e)
	}

	m.log.Debug("created entities from objects",
		zap.String("group", group),
		zap.Stringer("match", match),
		zap.Int("count", len(entities)),
	)
	return entities, nil
}

// CreateFromTiles creates an entity at the world position of every tile
// holding one of `indices`. Tiles that got an entity then have their index
// replaced: by the replacement at the same position in `replacements`, by
// replacements[0] when only one is given, or not at all when none are.
func (m *Tilemap) CreateFromTiles(indices, replacements []int, cfg *Properties, scene Scene, cam Camera, ref LayerRef) ([]Entity, error) {
	var l *LayerData
	var err error
	if len(replacements) > 0 {
		l, err = m.mutableLayer("CreateFromTiles", ref)
	} else {
		l, err = m.layer("CreateFromTiles", ref)
	}
	if err != nil {
		return nil, err
	}

	if scene == nil {
		scene = m.scene
	}
	if scene == nil {
		m.log.Warn("cannot create from tiles: no scene", zap.String("layer", l.Name))
		return nil, fmt.Errorf("create from tiles: %w", ErrNoScene)
	}

	replace := map[int]int{}
	for i, index := range indices {
		switch {
		case len(replacements) == 1:
			replace[index] = replacements[0]
		case i < len(replacements):
			replace[index] = replacements[i]
		}
	}

	want := map[int]bool{}
	for _, index := range indices {
		want[index] = true
	}

	entities := []Entity{}
	changed := false
	for _, t := range getTilesWithin(nil, nil, l) {
		if !want[t.Index] {
			continue
		}

		c := cfg.Clone().Merge(t.Properties)
		c.SetFloat("x", tileToWorldX(t.x, cam, l))
		c.SetFloat("y", tileToWorldY(t.y, cam, l))
		entities = append(entities, scene.Entities().Construct(c))

		if r, ok := replace[t.Index]; ok {
			l.setTileIndex(t, r)
			changed = true
		}
	}

	if changed {
		calculateFacesWithin(nil, l)
	}
	return entities, nil
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
