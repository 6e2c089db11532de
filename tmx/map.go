/* file turns a decoded TMX map into the tilemap.MapData bundle a
tilemap.Tilemap is built from.
*/
package tmx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mitchellh/go-homedir"

	"github.com/voidshard/tilemap"
)

// Decoder reads TMX maps.
type Decoder struct {
	// InsertNull leaves cells with gid 0 as no-data (nil) cells rather than
	// empty tiles.
	InsertNull bool
}

// Decode an input TMX map XML with default settings
func Decode(r io.Reader) (*tilemap.MapData, error) {
	return (&Decoder{}).Decode(r)
}

// Open decodes the TMX file `fname` with default settings.
func Open(fname string) (*tilemap.MapData, error) {
	return (&Decoder{}).Open(fname)
}

// Open decodes the TMX file `fname`. A leading ~ is expanded to the user's
// home directory.
func (d *Decoder) Open(fname string) (*tilemap.MapData, error) {
	fpath, err := homedir.Expand(fname)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	md, err := d.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", fpath, err)
	}
	return md, nil
}

// Decode an input TMX map XML
func (d *Decoder) Decode(r io.Reader) (*tilemap.MapData, error) {
	m := &Map{}
	if err := xml.NewDecoder(r).Decode(m); err != nil {
		return nil, err
	}
	if m.Infinite != 0 {
		return nil, fmt.Errorf("infinite tmx maps are not supported")
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile size %dx%d", m.TileWidth, m.TileHeight)
	}

	md := tilemap.NewMapData(m.TileWidth, m.TileHeight, m.Width, m.Height)
	md.Orientation = m.Orientation
	md.Format = tilemap.FormatTiled
	md.Version = m.Version
	md.Properties = newPropertiesFromList(m.RootProperties)

	for _, ts := range m.Tilesets {
		t, err := newTileset(ts)
		if err != nil {
			return nil, err
		}
		md.Tilesets = append(md.Tilesets, t)
	}

	for _, tl := range m.TileLayers {
		l, err := d.newLayer(m, tl)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", tl.Name, err)
		}
		md.Layers = append(md.Layers, l)
	}

	for _, og := range m.ObjectGroups {
		objs := make([]*tilemap.ObjectPlacement, 0, len(og.Objects))
		for _, o := range og.Objects {
			objs = append(objs, newObjectPlacement(o))
		}
		md.Objects[og.Name] = objs
	}

	for _, il := range m.ImageLayers {
		if il.Image == nil {
			continue
		}
		md.Images = append(md.Images, &tilemap.ImageInfo{
			Name:   il.Name,
			Source: il.Image.Source,
			Width:  il.Image.Width,
			Height: il.Image.Height,
		})
	}

	return md, nil
}

// newLayer decodes a tile layer. Flip flags on gids are dropped.
func (d *Decoder) newLayer(m *Map, tl *TileLayer) (*tilemap.LayerData, error) {
	gids, err := tl.Data.decodeGIDs()
	if err != nil {
		return nil, err
	}
	if len(gids) != tl.Width*tl.Height {
		return nil, fmt.Errorf("expected %d tiles, got %d", tl.Width*tl.Height, len(gids))
	}

	indices := make([]int, len(gids))
	for i, gid := range gids {
		gid &= gidMask
		if gid == 0 {
			indices[i] = tilemap.EmptyIndex
		} else {
			indices[i] = int(gid)
		}
	}

	l := tilemap.NewLayerData(tl.Name, tl.Width, tl.Height, m.TileWidth, m.TileHeight, indices, d.InsertNull)
	l.Visible = tl.Visible != "0"
	if tl.Opacity != "" {
		if v, err := strconv.ParseFloat(tl.Opacity, 64); err == nil {
			l.Opacity = v
		}
	}
	l.Properties = newPropertiesFromList(tl.Properties)
	return l, nil
}

func newTileset(ts *Tileset) (*tilemap.Tileset, error) {
	if ts.Source != "" {
		return nil, fmt.Errorf("tileset %q: external tileset source %s is not supported", ts.Name, ts.Source)
	}

	t := tilemap.NewTileset(ts.Name, int(ts.FirstGID), ts.TileWidth, ts.TileHeight, ts.Margin, ts.Spacing)
	t.Properties = newPropertiesFromList(ts.Properties)
	for _, tile := range ts.Tiles {
		if len(tile.Properties) == 0 {
			continue
		}
		t.SetTileProperties(int(ts.FirstGID+tile.ID), newPropertiesFromList(tile.Properties))
	}
	return t, nil
}

// newObjectPlacement converts a TMX object. Tile objects (those with a gid)
// carry their flip flags in the gid.
func newObjectPlacement(o *Object) *tilemap.ObjectPlacement {
	visible := o.Visible != "0"
	p := &tilemap.ObjectPlacement{
		ID:         o.ID,
		Name:       o.Name,
		Type:       o.Type,
		X:          o.X,
		Y:          o.Y,
		Width:      o.Width,
		Height:     o.Height,
		Rotation:   o.Rotation,
		Visible:    &visible,
		Properties: newPropertiesFromList(o.Properties),
	}
	if o.GID != 0 {
		h := o.GID&flippedHorizontally != 0
		v := o.GID&flippedVertically != 0
		p.GID = int(o.GID & gidMask)
		p.FlippedHorizontal = &h
		p.FlippedVertical = &v
	}
	return p
}

// newPropertiesFromList turns the XML []Property into typed tilemap properties.
func newPropertiesFromList(in []*Property) *tilemap.Properties {
	ps := tilemap.NewProperties()

	for _, i := range in {
		switch i.Type {
		case tilemap.PropInt:
			v, _ := strconv.ParseInt(i.Value, 10, 64)
			ps.SetInt(i.Name, int(v))
		case tilemap.PropFloat:
			v, _ := strconv.ParseFloat(i.Value, 64)
			ps.SetFloat(i.Name, v)
		case tilemap.PropBool:
			ps.SetBool(i.Name, i.Value == "true")
		default:
			// color, file etc are kept as strings
			ps.SetString(i.Name, i.Value)
		}
	}

	return ps
}
