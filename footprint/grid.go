package footprint

import (
	"github.com/venicegeo/bf-viirs/model"
)

// TileSize is the edge length in meters of one sinusoidal grid tile
const TileSize = 1111950.5197665

// Pixel sizes in meters of the sinusoidal grids, keyed by tile edge length in pixels
const (
	PixelSize1000M = 926.625433055833
	PixelSize500M  = 463.312716527917
	PixelSize375M  = 370.650173222333
)

// PixelSizes maps a tile edge length onto its pixel size. The table is authoritative:
// struct metadata corners are not precise enough to derive sub-pixel sizes.
var PixelSizes = map[int]float64{
	1200: PixelSize1000M,
	2400: PixelSize500M,
	3000: PixelSize375M,
}

// Geographic products sit on a fixed grid of 10 degree tiles
const (
	GeographicTileDegrees = 10.0
	GeographicEPSG        = 4326
)

// PixelSize returns the pixel size for a sinusoidal grid edge length
func PixelSize(edge int) (float64, error) {
	size, ok := PixelSizes[edge]
	if !ok {
		return 0, model.Unsupported("no pixel size for a %d pixel sinusoidal grid", edge)
	}
	return size, nil
}

// TransformFor derives the affine pixel-to-native transform of a granule
func TransformFor(meta model.Metadata) (model.Transform, error) {
	edge := meta.Shape[0]
	if meta.ProductInfo().Geographic() {
		size := GeographicTileDegrees / float64(edge)
		left := GeographicTileDegrees*float64(meta.HorizontalTile) - 180
		top := 90 - GeographicTileDegrees*float64(meta.VerticalTile)
		return model.Transform{size, 0, left, 0, -size, top}, nil
	}

	size, err := PixelSize(edge)
	if err != nil {
		return model.Transform{}, err
	}
	return model.Transform{size, 0, meta.Left, 0, -size, meta.Top}, nil
}

// CRSFor returns the native CRS of a granule's product
func CRSFor(meta model.Metadata) model.CRS {
	if info := meta.ProductInfo(); info.EPSG != 0 {
		return model.EPSGCRS(info.EPSG)
	}
	return model.WKTCRS(model.SinusoidalWKT)
}

// PixelRing returns the closed pixel-space rectangle of a grid as (col, row) points:
// upper-left, lower-left, lower-right, upper-right, upper-left
func PixelRing(shape [2]int) [][]float64 {
	rows, cols := float64(shape[0]), float64(shape[1])
	return [][]float64{{0, 0}, {0, rows}, {cols, rows}, {cols, 0}, {0, 0}}
}

// ProjectedRing maps the pixel rectangle through the transform
func ProjectedRing(transform model.Transform, shape [2]int) [][]float64 {
	pixels := PixelRing(shape)
	ring := make([][]float64, len(pixels))
	for i, p := range pixels {
		x, y := transform.Apply(p[0], p[1])
		ring[i] = []float64{x, y}
	}
	return ring
}
