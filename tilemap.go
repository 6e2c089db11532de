/* file holds the Tilemap itself: its registries of layers, tilesets & objects
and how a LayerRef is resolved to a layer.
*/
package tilemap

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Tilemap owns a set of tile layers sharing one tile / world coordinate space,
// the tilesets used to draw them & object groups placed on top of them.
//
// A Tilemap is not safe for concurrent use.
type Tilemap struct {
	// default tile size for layers, in pixels
	TileWidth  int
	TileHeight int

	// in tiles
	Width  int
	Height int

	WidthInPixels  int
	HeightInPixels int

	Orientation string
	Format      Format
	Version     string
	Properties  *Properties

	layers            []*LayerData
	tilesets          []*Tileset
	objects           map[string][]*ObjectPlacement
	images            []*ImageInfo
	currentLayerIndex int

	scene      Scene
	log        *zap.Logger
	rng        *rand.Rand
	nextViewID int
}

// Option configures a Tilemap
type Option func(*Tilemap)

// WithScene sets the scene views are registered with & entities are made in
func WithScene(s Scene) Option {
	return func(m *Tilemap) { m.scene = s }
}

// WithLogger sets where diagnostics go (default: nowhere)
func WithLogger(l *zap.Logger) Option {
	return func(m *Tilemap) {
		if l != nil {
			m.log = l
		}
	}
}

// WithRand sets the random source used by Randomize & Shuffle
func WithRand(r *rand.Rand) Option {
	return func(m *Tilemap) {
		if r != nil {
			m.rng = r
		}
	}
}

// New builds a Tilemap from pre-parsed map data. The map takes ownership of
// the layers, tilesets & objects in `data`.
func New(data *MapData, opts ...Option) *Tilemap {
	m := &Tilemap{
		TileWidth:      data.TileWidth,
		TileHeight:     data.TileHeight,
		Width:          data.Width,
		Height:         data.Height,
		WidthInPixels:  data.Width * data.TileWidth,
		HeightInPixels: data.Height * data.TileHeight,
		Orientation:    data.Orientation,
		Format:         data.Format,
		Version:        data.Version,
		Properties:     data.Properties,
		layers:         []*LayerData{},
		tilesets:       []*Tileset{},
		objects:        map[string][]*ObjectPlacement{},
		images:         []*ImageInfo{},
		log:            zap.NewNop(),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		nextViewID:     1,
	}
	if m.Properties == nil {
		m.Properties = NewProperties()
	}

	for _, l := range data.Layers {
		m.appendLayer(l)
	}
	m.currentLayerIndex = 0
	m.tilesets = append(m.tilesets, data.Tilesets...)
	for name, group := range data.Objects {
		m.objects[name] = group
	}
	m.images = append(m.images, data.Images...)

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewBlank returns a map with no layers sized by `cfg`.
func NewBlank(cfg *Config, opts ...Option) *Tilemap {
	data := NewMapData(int(cfg.TileWidth), int(cfg.TileHeight), int(cfg.MapWidth), int(cfg.MapHeight))
	return New(data, opts...)
}

// Scene returns the scene the map renders into (may be nil)
func (m *Tilemap) Scene() Scene { return m.scene }

func (m *Tilemap) appendLayer(l *LayerData) {
	l.setIndex(len(m.layers))
	m.layers = append(m.layers, l)
}

// ResolveLayer returns the index of the layer `ref` refers to.
func (m *Tilemap) ResolveLayer(ref LayerRef) (int, error) {
	i := -1
	switch ref.kind {
	case refCurrent:
		i = m.currentLayerIndex
	case refName:
		i = m.LayerIndexByName(ref.name)
	case refIndex:
		i = ref.index
	case refView:
		if ref.view != nil {
			i = ref.view.layerIndex
		}
	}
	if i < 0 || i >= len(m.layers) {
		return -1, fmt.Errorf("%w: %s", ErrLayerNotFound, ref)
	}
	if ref.kind == refView && m.layers[i] != ref.view.source {
		return -1, fmt.Errorf("%w: %s is stale", ErrLayerNotFound, ref)
	}
	return i, nil
}

// Layer returns the layer `ref` refers to
func (m *Tilemap) Layer(ref LayerRef) (*LayerData, error) {
	i, err := m.ResolveLayer(ref)
	if err != nil {
		return nil, err
	}
	return m.layers[i], nil
}

// layer resolves `ref` for operation `op`, logging on failure
func (m *Tilemap) layer(op string, ref LayerRef) (*LayerData, error) {
	l, err := m.Layer(ref)
	if err != nil {
		m.log.Warn("layer not found", zap.String("op", op), zap.Stringer("layer", ref))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// mutableLayer resolves `ref` for an operation that edits tiles, refusing
// layers bound to a static view.
func (m *Tilemap) mutableLayer(op string, ref LayerRef) (*LayerData, error) {
	l, err := m.layer(op, ref)
	if err != nil {
		return nil, err
	}
	if !l.mutable() {
		m.log.Warn("cannot change the tiles of a static layer", zap.String("op", op), zap.String("layer", l.Name))
		return nil, fmt.Errorf("%s: %w: %q", op, ErrStaticLayerImmutable, l.Name)
	}
	return l, nil
}

// LayerIndexByName returns the index of the first layer called `name` or -1
func (m *Tilemap) LayerIndexByName(name string) int {
	for i, l := range m.layers {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// Layers returns all layers in order
func (m *Tilemap) Layers() []*LayerData {
	out := make([]*LayerData, len(m.layers))
	copy(out, m.layers)
	return out
}

// LayerNames returns the name of each layer in order
func (m *Tilemap) LayerNames() []string {
	names := make([]string, len(m.layers))
	for i, l := range m.layers {
		names[i] = l.Name
	}
	return names
}

// CurrentLayer returns the layer used when no layer is given (nil if the
// map has no layers)
func (m *Tilemap) CurrentLayer() *LayerData {
	if m.currentLayerIndex >= len(m.layers) {
		return nil
	}
	return m.layers[m.currentLayerIndex]
}

// CurrentLayerIndex returns the index of the current layer
func (m *Tilemap) CurrentLayerIndex() int { return m.currentLayerIndex }

// SetLayer makes `ref` the current layer
func (m *Tilemap) SetLayer(ref LayerRef) error {
	i, err := m.ResolveLayer(ref)
	if err != nil {
		m.log.Warn("layer not found", zap.String("op", "SetLayer"), zap.Stringer("layer", ref))
		return err
	}
	m.currentLayerIndex = i
	return nil
}

// Tilesets returns all tilesets in order
func (m *Tilemap) Tilesets() []*Tileset {
	out := make([]*Tileset, len(m.tilesets))
	copy(out, m.tilesets)
	return out
}

// TilesetIndex returns the index of the tileset called `name` or -1
func (m *Tilemap) TilesetIndex(name string) int {
	for i, ts := range m.tilesets {
		if ts.Name == name {
			return i
		}
	}
	return -1
}

// Tileset returns the tileset called `name` or nil
func (m *Tilemap) Tileset(name string) *Tileset {
	if i := m.TilesetIndex(name); i >= 0 {
		return m.tilesets[i]
	}
	return nil
}

// Images returns the images referenced by the map data
func (m *Tilemap) Images() []*ImageInfo {
	out := make([]*ImageInfo, len(m.images))
	copy(out, m.images)
	return out
}

// ImageIndex returns the index of the image called `name` or -1
func (m *Tilemap) ImageIndex(name string) int {
	for i, img := range m.images {
		if img.Name == name {
			return i
		}
	}
	return -1
}

// ObjectGroups returns the names of all object groups, sorted
func (m *Tilemap) ObjectGroups() []string {
	names := make([]string, 0, len(m.objects))
	for name := range m.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Objects returns the placements of object group `name`
func (m *Tilemap) Objects(name string) ([]*ObjectPlacement, bool) {
	group, ok := m.objects[name]
	return group, ok
}

type tilesetOptions struct {
	tileWidth, tileHeight int
	margin, spacing       int
	hasSpacing            bool
	firstGID              int
}

// TilesetOption configures RegisterTilesetImage
type TilesetOption func(*tilesetOptions)

// WithTileSize sets the tile size of the tileset (default: the map's)
func WithTileSize(width, height int) TilesetOption {
	return func(o *tilesetOptions) {
		o.tileWidth = width
		o.tileHeight = height
	}
}

// WithMarginSpacing sets the margin around & spacing between tiles in the image
func WithMarginSpacing(margin, spacing int) TilesetOption {
	return func(o *tilesetOptions) {
		o.margin = margin
		o.spacing = spacing
		o.hasSpacing = true
	}
}

// WithFirstGID sets the first gid of a newly created tileset
func WithFirstGID(gid int) TilesetOption {
	return func(o *tilesetOptions) { o.firstGID = gid }
}

// RegisterTilesetImage binds the image loaded under `key` to tileset `name`.
// An empty key means the image is keyed by the tileset name. If the tileset
// exists it is updated in place, otherwise it is created (unless the map
// data requires tilesets to be declared up front).
func (m *Tilemap) RegisterTilesetImage(name, key string, opts ...TilesetOption) (*Tileset, error) {
	if key == "" {
		key = name
	}
	o := &tilesetOptions{tileWidth: m.TileWidth, tileHeight: m.TileHeight}
	for _, opt := range opts {
		opt(o)
	}

	if m.scene == nil {
		m.log.Warn("cannot register tileset image: map has no scene", zap.String("tileset", name))
		return nil, fmt.Errorf("register tileset %q: %w", name, ErrNoScene)
	}
	if !m.scene.Assets().Exists(key) {
		m.log.Warn("invalid image key given for tileset", zap.String("tileset", name), zap.String("key", key))
		return nil, fmt.Errorf("%w: %q", ErrImageKeyNotFound, key)
	}
	texture := m.scene.Assets().Get(key)

	i := m.TilesetIndex(name)
	if i < 0 && m.Format.requiresDeclaredTilesets() {
		m.log.Warn("no tileset in map data matching name", zap.String("tileset", name))
		return nil, fmt.Errorf("%w: %q", ErrTilesetNotDeclared, name)
	}

	if i >= 0 {
		ts := m.tilesets[i]
		ts.SetTileSize(o.tileWidth, o.tileHeight)
		if o.hasSpacing {
			ts.SetSpacing(o.margin, o.spacing)
		}
		ts.SetImage(texture)
		return ts, nil
	}

	ts := NewTileset(name, o.firstGID, o.tileWidth, o.tileHeight, o.margin, o.spacing)
	ts.SetImage(texture)
	m.tilesets = append(m.tilesets, ts)
	return ts, nil
}

type layerOptions struct {
	width, height         int
	tileWidth, tileHeight int
}

// LayerOption configures CreateBlankLayer
type LayerOption func(*layerOptions)

// WithLayerSize sets the layer size in tiles (default: the map's)
func WithLayerSize(width, height int) LayerOption {
	return func(o *layerOptions) {
		o.width = width
		o.height = height
	}
}

// WithLayerTileSize sets the layer's tile size in pixels (default: the map's)
func WithLayerTileSize(width, height int) LayerOption {
	return func(o *layerOptions) {
		o.tileWidth = width
		o.tileHeight = height
	}
}

// CreateBlankLayer adds a layer where every cell holds an empty tile, makes
// it the current layer & returns a mutable view of it at world (x,y).
func (m *Tilemap) CreateBlankLayer(name string, tileset *Tileset, x, y float64, opts ...LayerOption) (*LayerView, error) {
	o := &layerOptions{width: m.Width, height: m.Height, tileWidth: m.TileWidth, tileHeight: m.TileHeight}
	for _, opt := range opts {
		opt(o)
	}
	if o.tileWidth <= 0 || o.tileHeight <= 0 {
		return nil, fmt.Errorf("create blank layer %q: %w", name, ErrInvalidTileSize)
	}

	if m.LayerIndexByName(name) >= 0 {
		m.log.Warn("cannot create blank layer: layer with matching name exists", zap.String("layer", name))
		return nil, fmt.Errorf("%w: %q", ErrDuplicateLayerName, name)
	}

	l := NewBlankLayerData(name, o.width, o.height, o.tileWidth, o.tileHeight)
	m.appendLayer(l)
	m.currentLayerIndex = l.index

	return m.bindView("CreateBlankLayer", l, tileset, x, y, true)
}

// CreateStaticLayer binds a read only view to the layer `ref` & makes it the
// current layer.
func (m *Tilemap) CreateStaticLayer(ref LayerRef, tileset *Tileset, x, y float64) (*LayerView, error) {
	return m.createView("CreateStaticLayer", ref, tileset, x, y, false)
}

// CreateMutableLayer binds an editable view to the layer `ref` & makes it
// the current layer.
func (m *Tilemap) CreateMutableLayer(ref LayerRef, tileset *Tileset, x, y float64) (*LayerView, error) {
	return m.createView("CreateMutableLayer", ref, tileset, x, y, true)
}

func (m *Tilemap) createView(op string, ref LayerRef, tileset *Tileset, x, y float64, mutable bool) (*LayerView, error) {
	l, err := m.layer(op, ref)
	if err != nil {
		return nil, err
	}

	v, err := m.bindView(op, l, tileset, x, y, mutable)
	if err != nil {
		return nil, err
	}
	m.currentLayerIndex = l.index
	return v, nil
}

// bindView makes a view of `l`, attaches it & registers it with the scene.
func (m *Tilemap) bindView(op string, l *LayerData, tileset *Tileset, x, y float64, mutable bool) (*LayerView, error) {
	v := newLayerView(m.nextViewID, l, tileset, x, y, mutable)
	if err := l.attach(v); err != nil {
		m.log.Warn("cannot create layer view: layer already has one", zap.String("op", op), zap.String("layer", l.Name))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m.nextViewID++
	if m.scene != nil {
		m.scene.Register(v)
	}
	return v, nil
}

// ConvertLayerToStatic replaces the mutable view of layer `ref` by a static
// view at the same position with the same tileset. The mutable view is
// destroyed.
func (m *Tilemap) ConvertLayerToStatic(ref LayerRef) (*LayerView, error) {
	l, err := m.layer("ConvertLayerToStatic", ref)
	if err != nil {
		return nil, err
	}

	old := l.view
	if old == nil {
		m.log.Warn("cannot convert layer to static: layer has no view", zap.String("layer", l.Name))
		return nil, fmt.Errorf("ConvertLayerToStatic: %w: %q", ErrNoView, l.Name)
	}
	if !old.Mutable() {
		m.log.Warn("cannot convert layer to static: view is already static", zap.String("layer", l.Name))
		return nil, fmt.Errorf("ConvertLayerToStatic: %w: %q", ErrViewNotMutable, l.Name)
	}

	sx, sy := old.ScrollFactorX, old.ScrollFactorY
	old.Destroy()

	sv, err := m.bindView("ConvertLayerToStatic", l, old.Tileset, old.X, old.Y, false)
	if err != nil {
		return nil, err
	}
	sv.SetScrollFactor(sx, sy)
	return sv, nil
}

// SetTileSize changes the default tile size & the tile size of every layer
// and tile.
func (m *Tilemap) SetTileSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidTileSize
	}
	m.TileWidth = width
	m.TileHeight = height
	m.WidthInPixels = m.Width * width
	m.HeightInPixels = m.Height * height
	for _, l := range m.layers {
		l.setTileSize(width, height)
	}
	return nil
}

// RemoveAllLayers drops every layer. Views are not destroyed.
func (m *Tilemap) RemoveAllLayers() {
	for _, l := range m.layers {
		l.clear()
	}
	m.layers = []*LayerData{}
	m.currentLayerIndex = 0
}

// Destroy clears all registries. Views registered with the scene are left
// for the scene to release.
func (m *Tilemap) Destroy() {
	m.RemoveAllLayers()
	m.tilesets = []*Tileset{}
	m.objects = map[string][]*ObjectPlacement{}
	m.images = []*ImageInfo{}
	m.scene = nil
}
