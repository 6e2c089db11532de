package tilemap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeTexture struct {
	w, h int
}

func (t *fakeTexture) Size() (int, int) { return t.w, t.h }

type fakeAssets map[string]Texture

func (a fakeAssets) Exists(key string) bool {
	_, ok := a[key]
	return ok
}

func (a fakeAssets) Get(key string) Texture { return a[key] }

type fakeEntity struct {
	cfg              *Properties
	x, y             float64
	rotation         float64
	width, height    float64
	originX, originY float64
	visible          bool
	flipX, flipY     bool
	name             string
}

func (e *fakeEntity) Position() (float64, float64) { return e.x, e.y }
func (e *fakeEntity) SetPosition(x, y float64) { e.x, e.y = x, y }
func (e *fakeEntity) Rotation() float64 { return e.rotation }
func (e *fakeEntity) SetRotation(r float64) { e.rotation = r }
func (e *fakeEntity) DisplaySize() (float64, float64) { return e.width, e.height }
func (e *fakeEntity) SetDisplaySize(w, h float64) { e.width, e.height = w, h }
func (e *fakeEntity) Origin() (float64, float64) { return e.originX, e.originY }
func (e *fakeEntity) SetVisible(v bool) { e.visible = v }
func (e *fakeEntity) SetFlip(h, v bool) { e.flipX, e.flipY = h, v }
func (e *fakeEntity) SetName(n string) { e.name = n }

// fakeFactory builds 32x32 entities anchored at their centre
type fakeFactory struct {
	built []*fakeEntity
}

func (f *fakeFactory) Construct(cfg *Properties) Entity {
	x, _ := cfg.Number("x")
	y, _ := cfg.Number("y")
	e := &fakeEntity{
		cfg:     cfg,
		x:       x,
		y:       y,
		width:   32,
		height:  32,
		originX: 0.5,
		originY: 0.5,
		visible: true,
	}
	f.built = append(f.built, e)
	return e
}

type fakeScene struct {
	assets     fakeAssets
	factory    *fakeFactory
	registered []*LayerView
}

func newFakeScene() *fakeScene {
	return &fakeScene{
		assets: fakeAssets{
			"terrain": &fakeTexture{w: 64, h: 64},
		},
		factory: &fakeFactory{},
	}
}

func (s *fakeScene) Register(v *LayerView) { s.registered = append(s.registered, v) }
func (s *fakeScene) Assets() AssetRegistry { return s.assets }
func (s *fakeScene) Entities() EntityFactory { return s.factory }

type fakeCamera struct {
	x, y float64
}

func (c *fakeCamera) Scroll() (float64, float64) { return c.x, c.y }

// testMap returns a 4x3 map of 16x16 tiles with a single layer "ground":
//
//	1 2 3 -1
//	-1 -1 4 4
//	5 6 7 8
func testMap(t *testing.T, opts ...Option) *Tilemap {
	md := MapDataFromArray("test", [][]int{
		{1, 2, 3, -1},
		{-1, -1, 4, 4},
		{5, 6, 7, 8},
	}, 16, 16, false)
	md.Layers[0].Name = "ground"

	opts = append([]Option{WithRand(rand.New(rand.NewSource(42)))}, opts...)
	m := New(md, opts...)
	require.Equal(t, []string{"ground"}, m.LayerNames())
	return m
}

// blankMap returns a map with no layers & 10x10 tiles of 32x32px
func blankMap(t *testing.T, opts ...Option) *Tilemap {
	cfg := DefaultConfig()
	cfg.MapWidth, cfg.MapHeight = 10, 10
	opts = append([]Option{WithRand(rand.New(rand.NewSource(7)))}, opts...)
	return NewBlank(cfg, opts...)
}

func indicesOf(t *testing.T, m *Tilemap, ref LayerRef) []int {
	l, err := m.Layer(ref)
	require.NoError(t, err)
	return l.Indices()
}
