/* Package infinite imports regions of an 'infinite map' database as map data.

An infinite map database holds tiles by (x,y,z) & image source, plus typed
properties per image source, in sqlite. Any rectangle of it can be cut out
as a tilemap.MapData: one layer per z level, one tileset indexing the image
sources used.

The database is only ever read here.
*/
package infinite

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mitchellh/go-homedir"

	"github.com/voidshard/tilemap"
)

const (
	sqlGetTiles = `SELECT x,y,z,src FROM tiles WHERE x>=:x0 AND x<:x1 AND y>=:y0 AND y<:y1 ORDER BY z, y, x;`
	sqlGetTile  = `SELECT x,y,z,src FROM tiles WHERE x=:x0 AND y=:y0 AND z=:z0 LIMIT 1;`
	sqlGetProps = `SELECT src,data FROM properties WHERE `

	// TilesetName is the name of the tileset holding every image source
	TilesetName = "infinite"

	// SourceProperty is the tile property holding a tile's image source
	SourceProperty = "src"
)

// Source is a read only handle on an infinite map database.
type Source struct {
	filename string
	db       *sqlx.DB
}

// Open the infinite map database `fname`. A leading ~ is expanded to the
// user's home directory.
func Open(fname string) (*Source, error) {
	fpath, err := homedir.Expand(fname)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", fpath))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open infinite map %s: %w", fpath, err)
	}

	return &Source{db: db, filename: fpath}, nil
}

// Filename returns the path to the infinite map data on disk
func (s *Source) Filename() string {
	return s.filename
}

// Close the database
func (s *Source) Close() error {
	return s.db.Close()
}

// At returns the image source of the tile at (x,y,z) (or "" if unset)
func (s *Source) At(x, y, z int) (string, error) {
	rows, err := s.db.NamedQuery(sqlGetTile, map[string]interface{}{
		"x0": x,
		"y0": y,
		"z0": z,
	})
	if err != nil {
		return "", err
	}
	defer rows.Close()

	tile := dbTile{}
	for rows.Next() { // there's at most one due to LIMIT 1
		if err := rows.StructScan(&tile); err != nil {
			return "", err
		}
	}

	return tile.Src, rows.Err()
}

// MapData returns map data for the rectangle (x0,y0) -> (x1,y1) (exclusive)
// of the infinite map. Each z level becomes a layer named after it, in
// ascending z order. Image sources are numbered from 1 in sorted order &
// collected in a single tileset, with their stored properties (plus
// SourceProperty) as tile properties.
func (s *Source) MapData(tileWidth, tileHeight uint, x0, y0, x1, y1 int) (*tilemap.MapData, error) {
	if x1 <= x0 || y1 <= y0 {
		return nil, fmt.Errorf("requested map dimensions invalid, unable to build map")
	}
	if tileWidth == 0 || tileHeight == 0 {
		return nil, tilemap.ErrInvalidTileSize
	}

	rows, err := s.db.NamedQuery(sqlGetTiles, map[string]interface{}{
		"x0": x0, "x1": x1,
		"y0": y0, "y1": y1,
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tiles := []dbTile{}
	for rows.Next() {
		tile := dbTile{}
		if err := rows.StructScan(&tile); err != nil {
			return nil, err
		}
		tiles = append(tiles, tile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	width, height := x1-x0, y1-y0
	md := tilemap.NewMapData(int(tileWidth), int(tileHeight), width, height)
	md.Name = fmt.Sprintf("%s_%d.%d_%d.%d", s.filename, x0, y0, x1, y1)

	srcs := []string{}
	seen := map[string]bool{}
	for _, t := range tiles {
		if t.Src != "" && !seen[t.Src] {
			seen[t.Src] = true
			srcs = append(srcs, t.Src)
		}
	}
	sort.Strings(srcs)

	gids := map[string]int{}
	ts := tilemap.NewTileset(TilesetName, 1, int(tileWidth), int(tileHeight), 0, 0)
	props, err := s.properties(srcs...)
	if err != nil {
		return nil, err
	}
	for i, src := range srcs {
		gids[src] = i + 1

		p, ok := props[src]
		if !ok {
			p = tilemap.NewProperties()
		}
		p.SetString(SourceProperty, src)
		ts.SetTileProperties(i+1, p)
	}
	md.Tilesets = append(md.Tilesets, ts)

	// one layer per z level, ascending
	levels := map[int][]int{}
	zs := []int{}
	for _, t := range tiles {
		indices, ok := levels[t.Z]
		if !ok {
			indices = make([]int, width*height)
			for i := range indices {
				indices[i] = tilemap.EmptyIndex
			}
			zs = append(zs, t.Z)
		}
		if gid, ok := gids[t.Src]; ok {
			indices[(t.Y-y0)*width+(t.X-x0)] = gid
		}
		levels[t.Z] = indices
	}
	sort.Ints(zs)

	for _, z := range zs {
		md.Layers = append(md.Layers, tilemap.NewLayerData(
			strconv.Itoa(z), width, height, int(tileWidth), int(tileHeight), levels[z], false,
		))
	}

	return md, nil
}

// properties returns set properties by their src name
func (s *Source) properties(in ...string) (map[string]*tilemap.Properties, error) {
	result := map[string]*tilemap.Properties{}
	if len(in) == 0 {
		return result, nil
	}

	args := map[string]interface{}{}
	or := []string{}

	for i, src := range in {
		name := fmt.Sprintf("prop_%d", i)

		args[name] = src
		or = append(or, fmt.Sprintf("src=:%s", name))
	}

	qstr := fmt.Sprintf("%s %s LIMIT %d;", sqlGetProps, strings.Join(or, " OR "), len(in))

	rows, err := s.db.NamedQuery(qstr, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		r := dbProp{}
		if err := rows.StructScan(&r); err != nil {
			return nil, err
		}

		p, err := decodeProps(r.Data)
		if err != nil {
			return nil, fmt.Errorf("properties of %s: %w", r.Src, err)
		}
		result[r.Src] = p
	}

	return result, rows.Err()
}

// dbTile object encodes a single tile.
type dbTile struct {
	X   int    `db:"x"`
	Y   int    `db:"y"`
	Z   int    `db:"z"`
	Src string `db:"src"`
}

// dbProp object encodes properties for a single src.
type dbProp struct {
	Src  string `db:"src"`
	Data string `db:"data"`
}

// propBlock is the JSON layout of stored properties
type propBlock struct {
	I map[string]int
	S map[string]string
	B map[string]bool
}

func decodeProps(data string) (*tilemap.Properties, error) {
	block := propBlock{}
	if err := json.Unmarshal([]byte(data), &block); err != nil {
		return nil, err
	}

	p := tilemap.NewProperties()
	for k, v := range block.I {
		p.SetInt(k, v)
	}
	for k, v := range block.S {
		p.SetString(k, v)
	}
	for k, v := range block.B {
		p.SetBool(k, v)
	}
	return p, nil
}
