package footprint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/geojson-go/geojson"
)

// Reprojector maps a ring of native coordinates onto lon/lat
type Reprojector interface {
	Reproject(ring [][]float64, from model.CRS) ([][]float64, error)
}

// Simplifier reduces the vertex count of a lon/lat ring to a tolerance in degrees
type Simplifier interface {
	Simplify(ring [][]float64, tolerance float64) ([][]float64, error)
}

// GDAL reprojects and simplifies through OGR
type GDAL struct{}

// SpatialRef opens a GDAL spatial reference for a CRS. The caller closes it.
func SpatialRef(crs model.CRS) (*godal.SpatialRef, error) {
	if err := crs.Validate(); err != nil {
		return nil, err
	}
	if crs.EPSG != 0 {
		return godal.NewSpatialRefFromEPSG(crs.EPSG)
	}
	return godal.NewSpatialRefFromWKT(crs.WKT)
}

// Reproject implements Reprojector
func (GDAL) Reproject(ring [][]float64, from model.CRS) ([][]float64, error) {
	src, err := SpatialRef(from)
	if err != nil {
		return nil, fmt.Errorf("failed to load source CRS: %w", err)
	}
	defer src.Close()
	dst, err := godal.NewSpatialRefFromEPSG(GeographicEPSG)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	transform, err := godal.NewTransform(src, dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinate transform: %w", err)
	}
	defer transform.Close()

	xs := make([]float64, len(ring))
	ys := make([]float64, len(ring))
	for i, p := range ring {
		xs[i], ys[i] = p[0], p[1]
	}
	ok := make([]bool, len(ring))
	if err = transform.TransformEx(xs, ys, nil, ok); err != nil {
		return nil, fmt.Errorf("failed to reproject footprint: %w", err)
	}

	out := make([][]float64, len(ring))
	for i := range ring {
		if !ok[i] {
			return nil, fmt.Errorf("failed to reproject footprint point %v", ring[i])
		}
		out[i] = []float64{xs[i], ys[i]}
	}
	return out, nil
}

// Simplify implements Simplifier
func (GDAL) Simplify(ring [][]float64, tolerance float64) ([][]float64, error) {
	geometry, err := godal.NewGeometryFromWKT(polygonWKT(ring), nil)
	if err != nil {
		return nil, err
	}
	defer geometry.Close()

	simplified, err := geometry.Simplify(tolerance)
	if err != nil {
		return nil, fmt.Errorf("failed to simplify footprint: %w", err)
	}
	defer simplified.Close()

	encoded, err := simplified.GeoJSON(godal.SignificantDigits(15))
	if err != nil {
		return nil, err
	}
	polygon, err := geojson.PolygonFromBytes([]byte(encoded))
	if err != nil {
		return nil, err
	}
	if len(polygon.Coordinates) == 0 {
		return nil, fmt.Errorf("simplified footprint is empty")
	}
	return polygon.Coordinates[0], nil
}

func polygonWKT(ring [][]float64) string {
	coords := make([]string, len(ring))
	for i, p := range ring {
		coords[i] = strconv.FormatFloat(p[0], 'f', -1, 64) + " " + strconv.FormatFloat(p[1], 'f', -1, 64)
	}
	return "POLYGON ((" + strings.Join(coords, ",") + "))"
}
