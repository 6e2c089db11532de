package tilemap

// Texture is an image handle handed out by an AssetRegistry.
type Texture interface {
	// Size of the source image in pixels
	Size() (width, height int)
}

// AssetRegistry looks up loaded images by key.
type AssetRegistry interface {
	// Exists returns if an image was loaded under `key`
	Exists(key string) bool

	// Get returns the texture loaded under `key`
	Get(key string) Texture
}

// EntityFactory builds renderable entities (sprites) from a config.
type EntityFactory interface {
	// Construct an entity. The config holds at least float "x" and "y".
	Construct(cfg *Properties) Entity
}

// Entity is a renderable game object built by an EntityFactory.
type Entity interface {
	Position() (x, y float64)
	SetPosition(x, y float64)

	// Rotation in radians
	Rotation() float64
	SetRotation(radians float64)

	DisplaySize() (width, height float64)
	SetDisplaySize(width, height float64)

	// Origin is the normalised anchor point, (0.5, 0.5) is the centre
	Origin() (x, y float64)

	SetVisible(visible bool)
	SetFlip(horizontal, vertical bool)
	SetName(name string)
}

// Scene is where layer views get rendered and entities get created.
type Scene interface {
	// Register a layer view for rendering
	Register(view *LayerView)

	// Assets available to this scene
	Assets() AssetRegistry

	// Entities creates entities in this scene
	Entities() EntityFactory
}

// Camera is consulted by world <-> tile conversions.
type Camera interface {
	// Scroll offset in world pixels
	Scroll() (x, y float64)
}
