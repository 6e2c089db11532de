package tilemap

import "math"

// worldOffsetX is where column 0 of the layer starts in the world, taking the
// view position & camera scroll into account.
func worldOffsetX(cam Camera, layer *LayerData) float64 {
	v := layer.view
	if v == nil {
		return 0
	}
	off := v.X
	if cam != nil {
		sx, _ := cam.Scroll()
		off += sx * (1 - v.ScrollFactorX)
	}
	return off
}

func worldOffsetY(cam Camera, layer *LayerData) float64 {
	v := layer.view
	if v == nil {
		return 0
	}
	off := v.Y
	if cam != nil {
		_, sy := cam.Scroll()
		off += sy * (1 - v.ScrollFactorY)
	}
	return off
}

// worldToTileX converts a world x to a tile column, fractional unless
// `snapToFloor` is set.
func worldToTileX(worldX float64, snapToFloor bool, cam Camera, layer *LayerData) float64 {
	tx := (worldX - worldOffsetX(cam, layer)) / float64(layer.TileWidth)
	if snapToFloor {
		return math.Floor(tx)
	}
	return tx
}

func worldToTileY(worldY float64, snapToFloor bool, cam Camera, layer *LayerData) float64 {
	ty := (worldY - worldOffsetY(cam, layer)) / float64(layer.TileHeight)
	if snapToFloor {
		return math.Floor(ty)
	}
	return ty
}

// worldToTileXY snaps both axes & returns integer tile coordinates.
func worldToTileXY(worldX, worldY float64, cam Camera, layer *LayerData) (int, int) {
	return int(worldToTileX(worldX, true, cam, layer)), int(worldToTileY(worldY, true, cam, layer))
}

// tileToWorldX is the world x of the left edge of column `tileX`.
func tileToWorldX(tileX int, cam Camera, layer *LayerData) float64 {
	return float64(tileX*layer.TileWidth) + worldOffsetX(cam, layer)
}

func tileToWorldY(tileY int, cam Camera, layer *LayerData) float64 {
	return float64(tileY*layer.TileHeight) + worldOffsetY(cam, layer)
}
