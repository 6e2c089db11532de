/* this file is a simplified set of structs for reading TMX files.

The struct layout follows github.com/bcvery1/tilepix (all credit to authors),
extended with the object groups & data encodings the tilemap needs.

We only read what ends up in a tilemap.MapData so only those parts are parsed.
*/
package tmx

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// Tiled stores flip flags in the top bits of a gid
	flippedHorizontally = 0x80000000
	flippedVertically   = 0x40000000
	flippedDiagonally   = 0x20000000
	gidMask             = ^uint32(flippedHorizontally | flippedVertically | flippedDiagonally)
)

// Map is a TMX file structure representing the map as a whole.
// - orthogonal maps are expected, the orientation is carried but not interpreted
// - infinite (chunked) maps are not supported
// - tilesets must be embedded (no external .tsx source)
type Map struct {
	XMLName        xml.Name       `xml:"map"`
	Version        string         `xml:"version,attr"`
	Orientation    string         `xml:"orientation,attr"`
	Width          int            `xml:"width,attr"`      // in tiles
	Height         int            `xml:"height,attr"`     // in tiles
	TileWidth      int            `xml:"tilewidth,attr"`  // in pixels
	TileHeight     int            `xml:"tileheight,attr"` // in pixels
	Infinite       int            `xml:"infinite,attr"`
	RootProperties []*Property    `xml:"properties>property"`
	Tilesets       []*Tileset     `xml:"tileset"`
	ImageLayers    []*ImageLayer  `xml:"imagelayer"`
	TileLayers     []*TileLayer   `xml:"layer"`
	ObjectGroups   []*ObjectGroup `xml:"objectgroup"`
}

// ImageLayer is a TMX file structure which references an image layer.
type ImageLayer struct {
	ID    uint   `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Image *Image `xml:"image"`
}

// Tileset is a TMX file structure which represents a Tiled Tileset
type Tileset struct {
	FirstGID   uint        `xml:"firstgid,attr"`
	Source     string      `xml:"source,attr"`
	Name       string      `xml:"name,attr"`
	TileWidth  int         `xml:"tilewidth,attr"`
	TileHeight int         `xml:"tileheight,attr"`
	Spacing    int         `xml:"spacing,attr"`
	Margin     int         `xml:"margin,attr"`
	TileCount  int         `xml:"tilecount,attr"`
	Columns    int         `xml:"columns,attr"`
	Properties []*Property `xml:"properties>property"`
	Tiles      []*Tile     `xml:"tile"`
	Image      *Image      `xml:"image"`
}

// Property is a TMX file structure which holds a Tiled property.
type Property struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
	Type  string `xml:"type,attr"` // string (default), int, float, bool + other (read as string)
}

// Image is an image file in TMX
type Image struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

// Tile is a TMX tile (from a tileset)
type Tile struct {
	ID         uint        `xml:"id,attr"`
	Image      *Image      `xml:"image"`
	Properties []*Property `xml:"properties>property"`
}

// TileLayer is a TMX file structure holding one grid layer.
type TileLayer struct {
	ID         uint        `xml:"id,attr"`
	Width      int         `xml:"width,attr"`
	Height     int         `xml:"height,attr"`
	Name       string      `xml:"name,attr"`
	Visible    string      `xml:"visible,attr"` // "0" when hidden, absent otherwise
	Opacity    string      `xml:"opacity,attr"` // absent means 1
	Properties []*Property `xml:"properties>property"`
	Data       Data        `xml:"data"`
}

// Data is a TMX file structure holding layer tile data.
type Data struct {
	Encoding    string     `xml:"encoding,attr"`    // "csv", "base64" or "" (xml)
	Compression string     `xml:"compression,attr"` // "zlib", "gzip" or "" (base64 only)
	RawData     []byte     `xml:",innerxml"`
	Tiles       []DataTile `xml:"tile"`
}

// DataTile is one <tile> of xml encoded layer data
type DataTile struct {
	GID uint32 `xml:"gid,attr"`
}

// ObjectGroup is a TMX file structure holding a layer of free placed objects.
type ObjectGroup struct {
	ID         uint        `xml:"id,attr"`
	Name       string      `xml:"name,attr"`
	Properties []*Property `xml:"properties>property"`
	Objects    []*Object   `xml:"object"`
}

// Object is one placement in an object group.
type Object struct {
	ID         int         `xml:"id,attr"`
	Name       string      `xml:"name,attr"`
	Type       string      `xml:"type,attr"`
	GID        uint32      `xml:"gid,attr"`
	X          float64     `xml:"x,attr"`
	Y          float64     `xml:"y,attr"`
	Width      float64     `xml:"width,attr"`
	Height     float64     `xml:"height,attr"`
	Rotation   float64     `xml:"rotation,attr"`
	Visible    string      `xml:"visible,attr"`
	Properties []*Property `xml:"properties>property"`
}

// decodeGIDs returns the raw gids (flip flags included) of the layer data
func (d *Data) decodeGIDs() ([]uint32, error) {
	switch d.Encoding {
	case "csv":
		return d.decodeCSV()
	case "base64":
		return d.decodeBase64()
	case "":
		gids := make([]uint32, len(d.Tiles))
		for i, t := range d.Tiles {
			gids[i] = t.GID
		}
		return gids, nil
	}
	return nil, fmt.Errorf("unsupported data encoding %q", d.Encoding)
}

// decodeCSV reads csv encoded tile data
func (d *Data) decodeCSV() ([]uint32, error) {
	cleaner := func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}

	rawDataClean := strings.Map(cleaner, string(d.RawData))
	if rawDataClean == "" {
		return []uint32{}, nil
	}

	str := strings.Split(rawDataClean, ",")

	gids := make([]uint32, len(str))
	for i, s := range str {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, err
		}
		gids[i] = uint32(v)
	}
	return gids, nil
}

// decodeBase64 reads base64 (optionally compressed) little endian gids
func (d *Data) decodeBase64() ([]uint32, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(d.RawData)))
	if err != nil {
		return nil, err
	}

	var r io.Reader = bytes.NewReader(raw)
	switch d.Compression {
	case "":
	case "zlib":
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case "gzip":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	default:
		return nil, fmt.Errorf("unsupported data compression %q", d.Compression)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("base64 layer data is %d bytes, not a multiple of 4", len(data))
	}

	gids := make([]uint32, len(data)/4)
	for i := range gids {
		gids[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return gids, nil
}
