package tilemap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestResolveLayer(t *testing.T) {
	m := testMap(t)

	v, err := m.CreateBlankLayer("top", nil, 0, 0)
	require.NoError(t, err)

	for _, ref := range []LayerRef{Current, ByName("top"), ByIndex(1), ByView(v)} {
		i, err := m.ResolveLayer(ref)
		assert.NoError(t, err, ref.String())
		assert.Equal(t, 1, i, ref.String())
	}

	i, err := m.ResolveLayer(ByName("ground"))
	assert.NoError(t, err)
	assert.Equal(t, 0, i)

	for _, ref := range []LayerRef{ByName("missing"), ByIndex(2), ByIndex(-1), ByView(nil)} {
		_, err := m.ResolveLayer(ref)
		assert.ErrorIs(t, err, ErrLayerNotFound, ref.String())
	}
}

func TestStaleViewDoesNotResolve(t *testing.T) {
	m := New(MapDataFromArray("one", [][]int{{1}}, 16, 16, false))

	v, err := m.CreateMutableLayer(Current, nil, 0, 0)
	require.NoError(t, err)

	m.RemoveAllLayers()
	_, err = m.CreateBlankLayer("other", nil, 0, 0)
	require.NoError(t, err)

	_, err = m.Layer(ByView(v))
	assert.ErrorIs(t, err, ErrLayerNotFound)
	assert.ErrorIs(t, m.Fill(7, nil, false, ByView(v)), ErrLayerNotFound)
	_, err = m.PutTileAt(7, 0, 0, false, ByView(v))
	assert.ErrorIs(t, err, ErrLayerNotFound)

	tile, err := m.GetTileAt(0, 0, false, ByName("other"))
	require.NoError(t, err)
	assert.Equal(t, EmptyIndex, tile.Index)
}

func TestFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := testMap(t, WithLogger(zap.New(core)))

	_, err := m.ConvertLayerToStatic(Current)
	assert.ErrorIs(t, err, ErrNoView)
	assert.Equal(t, 1, logs.Len())

	_, err = m.CreateStaticLayer(Current, nil, 0, 0)
	require.NoError(t, err)
	_, err = m.ConvertLayerToStatic(Current)
	assert.ErrorIs(t, err, ErrViewNotMutable)
	assert.Equal(t, 2, logs.Len())

	_, err = m.CreateFromTiles([]int{1}, nil, nil, nil, nil, Current)
	assert.ErrorIs(t, err, ErrNoScene)
	assert.Equal(t, 3, logs.Len())

	_, err = m.RegisterTilesetImage("terrain", "")
	assert.ErrorIs(t, err, ErrNoScene)
	assert.Equal(t, 4, logs.Len())
}

func TestMissingLayerIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	m := testMap(t, WithLogger(zap.New(core)))

	tile, err := m.GetTileAt(0, 0, false, ByName("nope"))
	assert.Nil(t, tile)
	assert.ErrorIs(t, err, ErrLayerNotFound)

	entries := logs.FilterMessage("layer not found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "GetTileAt", entries[0].ContextMap()["op"])
}

func TestSetLayer(t *testing.T) {
	m := blankMap(t)

	_, err := m.CreateBlankLayer("a", nil, 0, 0)
	require.NoError(t, err)
	_, err = m.CreateBlankLayer("b", nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, m.CurrentLayerIndex())

	require.NoError(t, m.SetLayer(ByName("a")))
	assert.Equal(t, "a", m.CurrentLayer().Name)

	require.NoError(t, m.Fill(3, nil, false, Current))
	assert.Equal(t, 3, indicesOf(t, m, ByName("a"))[0])
	assert.Equal(t, EmptyIndex, indicesOf(t, m, ByName("b"))[0])

	assert.ErrorIs(t, m.SetLayer(ByName("zzz")), ErrLayerNotFound)
	assert.Equal(t, 0, m.CurrentLayerIndex())
}

func TestCreateBlankLayer(t *testing.T) {
	m := blankMap(t)

	v, err := m.CreateBlankLayer("blank", nil, 0, 0)
	require.NoError(t, err)
	assert.True(t, v.Mutable())

	tiles, err := m.GetTilesWithin(nil, nil, Current)
	require.NoError(t, err)
	assert.Len(t, tiles, 100)
	for _, tile := range tiles {
		assert.Equal(t, EmptyIndex, tile.Index)
		assert.Equal(t, 32, tile.Width)
	}

	require.NoError(t, m.Fill(5, Rect(0, 0, 5, 5), false, Current))

	set, err := m.GetTilesWithin(nil, &FilterOptions{IsNotEmpty: true}, Current)
	require.NoError(t, err)
	assert.Len(t, set, 25)

	tile, err := m.GetTileAt(5, 5, true, Current)
	require.NoError(t, err)
	assert.Equal(t, EmptyIndex, tile.Index)

	rest, err := m.GetTilesWithin(Rect(5, 5, 5, 5), nil, Current)
	require.NoError(t, err)
	assert.Len(t, rest, 25)
	for _, tile := range rest {
		assert.Equal(t, EmptyIndex, tile.Index)
	}

	_, err = m.CreateBlankLayer("blank", nil, 0, 0)
	assert.ErrorIs(t, err, ErrDuplicateLayerName)
	assert.Len(t, m.Layers(), 1)

	small, err := m.CreateBlankLayer("small", nil, 0, 0, WithLayerSize(2, 3), WithLayerTileSize(8, 4))
	require.NoError(t, err)
	l := small.Layer()
	assert.Equal(t, 2, l.Width)
	assert.Equal(t, 3, l.Height)
	assert.Equal(t, 8, l.TileWidth)
	assert.Equal(t, 4, l.TileAt(1, 2).Height)
	assert.Equal(t, 1, l.TileAt(1, 2).LayerIndex())

	_, err = m.CreateBlankLayer("bad", nil, 0, 0, WithLayerTileSize(0, 4))
	assert.ErrorIs(t, err, ErrInvalidTileSize)
}

func TestStaticLayerIsImmutable(t *testing.T) {
	m := testMap(t)

	v, err := m.CreateStaticLayer(ByName("ground"), nil, 0, 0)
	require.NoError(t, err)
	assert.False(t, v.Mutable())

	before := indicesOf(t, m, Current)

	edits := map[string]func() error{
		"Fill":           func() error { return m.Fill(9, nil, true, Current) },
		"Copy":           func() error { return m.Copy(Rect(0, 0, 1, 1), 1, 1, true, Current) },
		"Randomize":      func() error { return m.Randomize(nil, []int{9}, Current) },
		"Shuffle":        func() error { return m.Shuffle(nil, Current) },
		"SwapByIndex":    func() error { return m.SwapByIndex(1, 2, nil, ByIndex(0)) },
		"ReplaceByIndex": func() error { return m.ReplaceByIndex(1, 2, nil, ByView(v)) },
		"PutTileAt": func() error {
			_, err := m.PutTileAt(9, 0, 0, true, Current)
			return err
		},
		"PutTileAtWorldXY": func() error {
			_, err := m.PutTileAtWorldXY(9, 0, 0, true, nil, Current)
			return err
		},
		"RemoveTileAt": func() error {
			_, err := m.RemoveTileAt(0, 0, false, true, Current)
			return err
		},
		"RemoveTileAtWorldXY": func() error {
			_, err := m.RemoveTileAtWorldXY(0, 0, true, true, nil, Current)
			return err
		},
		"CreateFromTiles": func() error {
			_, err := m.CreateFromTiles([]int{1}, []int{2}, nil, newFakeScene(), nil, Current)
			return err
		},
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, edit(), ErrStaticLayerImmutable)
		})
	}

	if diff := cmp.Diff(before, indicesOf(t, m, Current)); diff != "" {
		t.Errorf("static layer changed (-want +got):\n%s", diff)
	}

	// collision & callbacks may still be set
	assert.NoError(t, m.SetCollision([]int{1}, true, true, Current))
	assert.NoError(t, m.SetTileIndexCallback([]int{1}, nil, nil, Current))

	tile, err := m.GetTileAt(0, 0, false, Current)
	require.NoError(t, err)
	assert.True(t, tile.Collides())
}

func TestCreateViewOnBoundLayer(t *testing.T) {
	m := testMap(t)

	_, err := m.CreateMutableLayer(ByName("ground"), nil, 0, 0)
	require.NoError(t, err)

	_, err = m.CreateStaticLayer(ByName("ground"), nil, 0, 0)
	assert.ErrorIs(t, err, ErrLayerAlreadyBound)

	_, err = m.CreateMutableLayer(ByName("missing"), nil, 0, 0)
	assert.ErrorIs(t, err, ErrLayerNotFound)
}

func TestViewQuads(t *testing.T) {
	scene := newFakeScene()
	m := testMap(t, WithScene(scene))

	ts, err := m.RegisterTilesetImage("terrain", "")
	require.NoError(t, err)

	v, err := m.CreateMutableLayer(ByName("ground"), ts, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, []*LayerView{v}, scene.registered)
	assert.Same(t, v, m.CurrentLayer().View())

	quads := v.Quads()
	require.Len(t, quads, 9)
	assert.Equal(t, Quad{TileX: 0, TileY: 0, Index: 1, X: 10, Y: 20, Width: 16, Height: 16, SrcX: 16, SrcY: 0}, quads[0])
	assert.Equal(t, Quad{TileX: 3, TileY: 2, Index: 8, X: 58, Y: 52, Width: 16, Height: 16, SrcX: 0, SrcY: 32}, quads[8])

	// mutable views follow edits
	_, err = m.PutTileAt(2, 3, 0, false, Current)
	require.NoError(t, err)
	assert.Len(t, v.Quads(), 10)

	// indices outside the tileset aren't drawn
	_, err = m.PutTileAt(99, 0, 0, false, Current)
	require.NoError(t, err)
	assert.Len(t, v.Quads(), 9)
}

func TestConvertLayerToStatic(t *testing.T) {
	scene := newFakeScene()
	m := testMap(t, WithScene(scene))

	ts, err := m.RegisterTilesetImage("terrain", "")
	require.NoError(t, err)

	_, err = m.ConvertLayerToStatic(ByName("ground"))
	assert.ErrorIs(t, err, ErrNoView)

	v, err := m.CreateMutableLayer(ByName("ground"), ts, 10, 20)
	require.NoError(t, err)
	v.SetScrollFactor(0.5, 0.25)

	sv, err := m.ConvertLayerToStatic(ByName("ground"))
	require.NoError(t, err)

	assert.True(t, v.Destroyed())
	assert.Nil(t, v.Quads())
	v.Destroy() // no-op

	// the superseded view still refers to its layer
	i, err := m.ResolveLayer(ByView(v))
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	assert.False(t, sv.Mutable())
	assert.Equal(t, 10.0, sv.X)
	assert.Equal(t, 20.0, sv.Y)
	assert.Equal(t, 0.5, sv.ScrollFactorX)
	assert.Equal(t, 0.25, sv.ScrollFactorY)
	assert.Same(t, ts, sv.Tileset)
	assert.NotEqual(t, v.ID, sv.ID)
	assert.Len(t, sv.Quads(), 9)
	assert.Equal(t, []*LayerView{v, sv}, scene.registered)

	l, err := m.Layer(ByView(sv))
	require.NoError(t, err)
	assert.Same(t, sv, l.View())

	assert.ErrorIs(t, m.Fill(1, nil, false, Current), ErrStaticLayerImmutable)

	_, err = m.ConvertLayerToStatic(ByName("ground"))
	assert.ErrorIs(t, err, ErrViewNotMutable)

	// destroying the static view releases the layer
	sv.Destroy()
	assert.Nil(t, l.View())
	assert.NoError(t, m.Fill(1, nil, false, Current))
}

func TestRegisterTilesetImage(t *testing.T) {
	t.Run("no scene", func(t *testing.T) {
		m := testMap(t)
		_, err := m.RegisterTilesetImage("terrain", "")
		assert.ErrorIs(t, err, ErrNoScene)
		assert.NotErrorIs(t, err, ErrImageKeyNotFound)
		assert.Len(t, m.Tilesets(), 0)
	})

	t.Run("missing key", func(t *testing.T) {
		m := testMap(t, WithScene(newFakeScene()))
		_, err := m.RegisterTilesetImage("terrain", "nope")
		assert.ErrorIs(t, err, ErrImageKeyNotFound)
		assert.Len(t, m.Tilesets(), 0)
	})

	t.Run("create & rebind", func(t *testing.T) {
		m := testMap(t, WithScene(newFakeScene()))

		ts, err := m.RegisterTilesetImage("terrain", "", WithFirstGID(1))
		require.NoError(t, err)
		assert.Equal(t, 1, ts.FirstGID)
		assert.Equal(t, 16, ts.TileWidth)
		assert.Equal(t, 16, ts.Total())
		assert.Same(t, ts, m.Tileset("terrain"))

		again, err := m.RegisterTilesetImage("terrain", "terrain", WithTileSize(32, 32))
		require.NoError(t, err)
		assert.Same(t, ts, again)
		assert.Equal(t, 4, ts.Total())
		assert.Len(t, m.Tilesets(), 1)

		_, err = m.RegisterTilesetImage("terrain", "", WithMarginSpacing(1, 2), WithTileSize(16, 16))
		require.NoError(t, err)
		assert.Equal(t, 9, ts.Total())
		x, y, ok := ts.TileTextureCoordinates(2)
		assert.True(t, ok)
		assert.Equal(t, 19, x)
		assert.Equal(t, 1, y)
	})

	t.Run("tiled data must declare tilesets", func(t *testing.T) {
		md := MapDataFromArray("tiled", [][]int{{1}}, 16, 16, false)
		md.Format = FormatTiled
		md.Tilesets = append(md.Tilesets, NewTileset("terrain", 1, 16, 16, 0, 0))
		m := New(md, WithScene(newFakeScene()))

		_, err := m.RegisterTilesetImage("other", "terrain")
		assert.ErrorIs(t, err, ErrTilesetNotDeclared)
		assert.Len(t, m.Tilesets(), 1)

		ts, err := m.RegisterTilesetImage("terrain", "")
		require.NoError(t, err)
		assert.Equal(t, 0, m.TilesetIndex("terrain"))
		assert.NotNil(t, ts.Image)
	})
}

func TestSetTileSize(t *testing.T) {
	m := testMap(t)

	require.NoError(t, m.SetTileSize(32, 8))
	assert.Equal(t, 128, m.WidthInPixels)
	assert.Equal(t, 24, m.HeightInPixels)

	tile, err := m.GetTileAt(1, 1, true, Current)
	require.NoError(t, err)
	assert.Equal(t, 32, tile.Width)
	assert.Equal(t, 8, tile.Height)

	x, y, err := m.TileToWorldXY(2, 2, nil, Current)
	require.NoError(t, err)
	assert.Equal(t, 64.0, x)
	assert.Equal(t, 16.0, y)

	assert.ErrorIs(t, m.SetTileSize(0, 1), ErrInvalidTileSize)
}

func TestRegistries(t *testing.T) {
	md := MapDataFromArray("reg", [][]int{{1}}, 8, 8, false)
	md.Images = append(md.Images, &ImageInfo{Name: "sky", Source: "sky.png"})
	md.Objects["b"] = []*ObjectPlacement{}
	md.Objects["a"] = []*ObjectPlacement{{ID: 1}}
	m := New(md)

	assert.Equal(t, 0, m.ImageIndex("sky"))
	assert.Equal(t, -1, m.ImageIndex("sea"))
	assert.Len(t, m.Images(), 1)
	assert.Equal(t, []string{"a", "b"}, m.ObjectGroups())
	assert.Equal(t, -1, m.TilesetIndex("none"))
	assert.Nil(t, m.Tileset("none"))
	assert.Equal(t, -1, m.LayerIndexByName("none"))

	objs, ok := m.Objects("a")
	assert.True(t, ok)
	assert.Len(t, objs, 1)
	_, ok = m.Objects("c")
	assert.False(t, ok)
}

func TestRemoveAllLayersAndDestroy(t *testing.T) {
	scene := newFakeScene()
	m := testMap(t, WithScene(scene))
	_, err := m.RegisterTilesetImage("terrain", "")
	require.NoError(t, err)

	m.RemoveAllLayers()
	assert.Len(t, m.Layers(), 0)
	assert.Nil(t, m.CurrentLayer())

	_, err = m.GetTileAt(0, 0, false, Current)
	assert.ErrorIs(t, err, ErrLayerNotFound)

	// layers can be added again
	_, err = m.CreateBlankLayer("ground", nil, 0, 0)
	assert.NoError(t, err)

	m.Destroy()
	assert.Len(t, m.Layers(), 0)
	assert.Len(t, m.Tilesets(), 0)
	assert.Nil(t, m.Scene())
}
