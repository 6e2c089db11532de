package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"github.com/voidshard/tilemap"
	"github.com/voidshard/tilemap/infinite"
	"github.com/voidshard/tilemap/tmx"
)

const desc = `Inspects tile maps & renders collision debug images of their layers.

Reads Tiled .tmx maps, .csv index grids & 'infinite map' .sqlite databases.`

var cli struct {
	Config string `short:"c" help:"yaml config file (logging & default tile size)"`

	// where to find the input map
	Input      string `short:"i" required:"" help:"input map: .tmx, .csv or infinite map .sqlite database"`
	InsertNull bool   `help:"leave empty cells as no-data cells"`

	// how wide/high each tile should be in pixels, for inputs that don't say
	TileWidth  uint `help:"width of each tile in px (.csv & .sqlite inputs, default from config)"`
	TileHeight uint `help:"height of each tile in px (.csv & .sqlite inputs, default from config)"`

	// region of an infinite map to read
	X0 int `default:"0" help:"x coord of map, top left corner (.sqlite input)"`
	Y0 int `default:"0" help:"y coord of map, top left corner (.sqlite input)"`
	X1 int `default:"0" help:"x coord of map, bottom right corner (.sqlite input)"`
	Y1 int `default:"0" help:"y coord of map, bottom right corner (.sqlite input)"`

	Info struct{} `cmd:"" help:"print a summary of the map's layers, tilesets & object groups"`

	Render struct {
		Output  string  `short:"o" help:"where to write the output .png. Defaults to input + layer + .png. Overwrites output file if it exists."`
		Layer   string  `short:"l" help:"name of the layer to render (default: first layer)"`
		Collide []int   `help:"tile indices that collide"`
		Exclude []int   `help:"make every tile collide except these indices"`
		Scale   float64 `default:"1" help:"output scale"`
	} `cmd:"" help:"render a layer's tiles, collision & faces to a png"`
}

func main() {
	ctx := kong.Parse(&cli, kong.Name("map-render"), kong.Description(desc))

	cfg := tilemap.DefaultConfig()
	if cli.Config != "" {
		var err error
		cfg, err = tilemap.LoadConfig(cli.Config)
		ctx.FatalIfErrorf(err)
	}

	logger, err := tilemap.NewLogger(cfg.Logging)
	ctx.FatalIfErrorf(err)
	defer logger.Sync()

	md, err := loadMapData(cfg)
	if err != nil {
		logger.Fatal("failed to load map", zap.String("input", cli.Input), zap.Error(err))
	}
	m := tilemap.New(md, tilemap.WithLogger(logger))

	switch ctx.Command() {
	case "info":
		printInfo(md.Name, m)
	case "render":
		if err := render(m); err != nil {
			logger.Fatal("failed to render map", zap.String("input", cli.Input), zap.Error(err))
		}
	default:
		ctx.Fatalf("unknown command %s", ctx.Command())
	}
}

// loadMapData reads the input map according to its file extension
func loadMapData(cfg *tilemap.Config) (*tilemap.MapData, error) {
	if !fileExists(cli.Input) {
		return nil, fmt.Errorf("input file not found: %s", cli.Input)
	}

	tw, th := cfg.TileWidth, cfg.TileHeight
	if cli.TileWidth > 0 {
		tw = cli.TileWidth
	}
	if cli.TileHeight > 0 {
		th = cli.TileHeight
	}

	switch strings.ToLower(filepath.Ext(cli.Input)) {
	case ".tmx":
		return (&tmx.Decoder{InsertNull: cli.InsertNull}).Open(cli.Input)
	case ".csv":
		f, err := os.Open(cli.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return tilemap.ParseCSV(filepath.Base(cli.Input), f, int(tw), int(th), cli.InsertNull)
	case ".sqlite", ".db":
		inf, err := infinite.Open(cli.Input)
		if err != nil {
			return nil, err
		}
		defer inf.Close()
		return inf.MapData(tw, th, cli.X0, cli.Y0, cli.X1, cli.Y1)
	}
	return nil, fmt.Errorf("unknown map type: %s", cli.Input)
}

func printInfo(name string, m *tilemap.Tilemap) {
	fmt.Printf("map %s: %dx%d tiles of %dx%dpx (%s, %s)\n",
		name, m.Width, m.Height, m.TileWidth, m.TileHeight, m.Format, m.Orientation)

	for _, l := range m.Layers() {
		count := 0
		for _, i := range l.Indices() {
			if i != tilemap.EmptyIndex {
				count++
			}
		}
		fmt.Printf("  layer %d %q: %dx%d, %d tiles set\n", l.Index(), l.Name, l.Width, l.Height, count)
	}

	for _, ts := range m.Tilesets() {
		fmt.Printf("  tileset %q: first gid %d, %dx%dpx tiles\n", ts.Name, ts.FirstGID, ts.TileWidth, ts.TileHeight)
	}

	for _, group := range m.ObjectGroups() {
		objs, _ := m.Objects(group)
		fmt.Printf("  object group %q: %d objects\n", group, len(objs))
	}
}

func render(m *tilemap.Tilemap) error {
	ref := tilemap.Current
	names := m.LayerNames()
	if cli.Render.Layer != "" {
		ref = tilemap.ByName(cli.Render.Layer)
	} else if len(names) == 0 {
		return fmt.Errorf("map has no layers")
	}

	if len(cli.Render.Collide) > 0 {
		if err := m.SetCollision(cli.Render.Collide, true, false, ref); err != nil {
			return err
		}
	}
	if len(cli.Render.Exclude) > 0 {
		if err := m.SetCollisionByExclusion(cli.Render.Exclude, true, false, ref); err != nil {
			return err
		}
	}
	if err := m.CalculateFacesWithin(nil, ref); err != nil {
		return err
	}

	l, err := m.Layer(ref)
	if err != nil {
		return err
	}

	style := tilemap.DefaultDebugStyle()
	style.Scale = cli.Render.Scale
	img, err := m.RenderDebug(ref, style)
	if err != nil {
		return err
	}

	out := cli.Render.Output
	if out == "" {
		out = fmt.Sprintf("%s_%s.png", cli.Input, l.Name)
	}
	if err := gg.SavePNG(out, img); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}

// fileExists checks if file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
