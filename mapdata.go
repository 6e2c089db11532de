package tilemap

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format identifies where map data came from.
type Format int

const (
	// FormatArray is a map built from 2D arrays of indices
	FormatArray Format = iota

	// FormatCSV is a single layer map from comma separated indices
	FormatCSV

	// FormatTiled is a map exported by the Tiled editor. Tilesets must be
	// declared by the map data before images can be bound to them.
	FormatTiled
)

func (f Format) String() string {
	switch f {
	case FormatArray:
		return "array"
	case FormatCSV:
		return "csv"
	case FormatTiled:
		return "tiled"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// requiresDeclaredTilesets returns if tilesets must be declared by the data
func (f Format) requiresDeclaredTilesets() bool {
	return f == FormatTiled
}

// ImageInfo describes an image referenced by the map (image layers &
// image collection tilesets).
type ImageInfo struct {
	Name   string
	Source string
	Width  int
	Height int
}

// MapData is the pre-parsed bundle a Tilemap is built from.
type MapData struct {
	Name string

	// in pixels
	TileWidth  int
	TileHeight int

	// in tiles
	Width  int
	Height int

	Orientation string
	Format      Format
	Version     string
	Properties  *Properties

	Layers   []*LayerData
	Tilesets []*Tileset
	Objects  map[string][]*ObjectPlacement
	Images   []*ImageInfo
}

// NewMapData returns an empty bundle (no layers) with the given dimensions.
func NewMapData(tileWidth, tileHeight, width, height int) *MapData {
	return &MapData{
		TileWidth:   tileWidth,
		TileHeight:  tileHeight,
		Width:       width,
		Height:      height,
		Orientation: "orthogonal",
		Format:      FormatArray,
		Properties:  NewProperties(),
		Layers:      []*LayerData{},
		Tilesets:    []*Tileset{},
		Objects:     map[string][]*ObjectPlacement{},
		Images:      []*ImageInfo{},
	}
}

// MapDataFromArray builds a single layer bundle from rows of tile indices.
// Rows may be ragged, the widest row sets the map width. Negative indices
// become empty tiles, or no-data cells when `insertNull` is set.
func MapDataFromArray(name string, rows [][]int, tileWidth, tileHeight int, insertNull bool) *MapData {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	indices := make([]int, 0, width*len(rows))
	for _, row := range rows {
		indices = append(indices, row...)
		for i := len(row); i < width; i++ {
			indices = append(indices, EmptyIndex)
		}
	}

	md := NewMapData(tileWidth, tileHeight, width, len(rows))
	md.Name = name
	md.Layers = append(md.Layers, NewLayerData("layer", width, len(rows), tileWidth, tileHeight, indices, insertNull))
	return md
}

// ParseCSV reads comma separated tile indices (one row per line) into a
// single layer bundle.
func ParseCSV(name string, r io.Reader, tileWidth, tileHeight int, insertNull bool) (*MapData, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv map %s: %w", name, err)
	}

	rows := make([][]int, 0, len(records))
	for y, rec := range records {
		row := make([]int, 0, len(rec))
		for x, field := range rec {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("csv map %s: cell (%d,%d): %w", name, x, y, err)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	md := MapDataFromArray(name, rows, tileWidth, tileHeight, insertNull)
	md.Format = FormatCSV
	return md, nil
}
