package tilemap

import "errors"

var (
	// ErrLayerNotFound is returned when a LayerRef doesn't resolve to a layer.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrDuplicateLayerName is returned when creating a layer whose name is taken.
	ErrDuplicateLayerName = errors.New("layer name already in use")

	// ErrStaticLayerImmutable is returned when tiles of a layer bound to a
	// static view are edited.
	ErrStaticLayerImmutable = errors.New("cannot change the tiles of a static layer")

	// ErrLayerAlreadyBound is returned when a layer already has a view.
	ErrLayerAlreadyBound = errors.New("layer already has a view")

	// ErrImageKeyNotFound is returned when the asset registry has no such image.
	ErrImageKeyNotFound = errors.New("image key not found")

	// ErrTilesetNotDeclared is returned when a Tiled map has no tileset of
	// the requested name.
	ErrTilesetNotDeclared = errors.New("tileset not declared in map data")

	// ErrObjectGroupNotFound is returned for an unknown object group name.
	ErrObjectGroupNotFound = errors.New("object group not found")

	ErrNoScene         = errors.New("no scene to create entities in")
	ErrNoView          = errors.New("layer has no view")
	ErrViewNotMutable  = errors.New("layer view is not mutable")
	ErrInvalidTileSize = errors.New("tile width and height must be positive")
)
