package footprint

import (
	"math"

	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/geojson-go/geojson"
)

// Builder derives a granule's grid geometry: transform, CRS and lon/lat footprint
type Builder struct {
	Reprojector       Reprojector
	Simplifier        Simplifier
	DensifyFactor     int
	SimplifyTolerance float64
	Strategy          Strategy
}

// NewBuilder returns a Builder backed by GDAL
func NewBuilder(densifyFactor int, simplifyTolerance float64, strategy Strategy) *Builder {
	return &Builder{
		Reprojector:       GDAL{},
		Simplifier:        GDAL{},
		DensifyFactor:     densifyFactor,
		SimplifyTolerance: simplifyTolerance,
		Strategy:          strategy,
	}
}

// Build runs densify, reproject, simplify and the antimeridian fix, in that order
func (b Builder) Build(meta model.Metadata) (*model.GridGeometry, error) {
	transform, err := TransformFor(meta)
	if err != nil {
		return nil, err
	}
	crs := CRSFor(meta)

	ring := Densify(ProjectedRing(transform, meta.Shape), b.DensifyFactor)

	if crs.EPSG != GeographicEPSG {
		if ring, err = b.Reprojector.Reproject(ring, crs); err != nil {
			return nil, err
		}
	}

	if b.Simplifier != nil && b.SimplifyTolerance > 0 {
		if ring, err = b.Simplifier.Simplify(ring, b.SimplifyTolerance); err != nil {
			return nil, err
		}
	}

	strategy := b.Strategy
	if strategy == "" {
		strategy = Split
	}
	geometry := FixAntimeridian(ring, strategy)
	roundGeometry(geometry, model.FootprintPrecision)

	return &model.GridGeometry{
		Transform: transform,
		CRS:       crs,
		Shape:     meta.Shape,
		Geometry:  geometry,
		Bbox:      Bbox(geometry),
	}, nil
}

// Bbox returns [west, south, east, north] over every coordinate of the geometry
func Bbox(geometry interface{}) []float64 {
	bbox := []float64{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	eachRing(geometry, func(ring [][]float64) {
		for _, p := range ring {
			bbox[0] = math.Min(bbox[0], p[0])
			bbox[1] = math.Min(bbox[1], p[1])
			bbox[2] = math.Max(bbox[2], p[0])
			bbox[3] = math.Max(bbox[3], p[1])
		}
	})
	return bbox
}

func roundGeometry(geometry interface{}, precision int) {
	scale := math.Pow(10, float64(precision))
	eachRing(geometry, func(ring [][]float64) {
		for _, p := range ring {
			p[0] = math.Round(p[0]*scale) / scale
			p[1] = math.Round(p[1]*scale) / scale
		}
	})
}

func eachRing(geometry interface{}, fn func([][]float64)) {
	switch g := geometry.(type) {
	case *geojson.Polygon:
		for _, ring := range g.Coordinates {
			fn(ring)
		}
	case *geojson.MultiPolygon:
		for _, polygon := range g.Coordinates {
			for _, ring := range polygon {
				fn(ring)
			}
		}
	}
}
