package footprint

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/geojson-go/geojson"
)

const sphereRadius = 6371007.181

// Mocks

// sinusoidalReprojector inverts the sinusoidal projection on the sphere used by the VIIRS grids
type sinusoidalReprojector struct {
	calls     int
	lastCount int
}

func (r *sinusoidalReprojector) Reproject(ring [][]float64, from model.CRS) ([][]float64, error) {
	r.calls++
	r.lastCount = len(ring)
	out := make([][]float64, len(ring))
	for i, p := range ring {
		lat := p[1] / sphereRadius
		lon := p[0] / (sphereRadius * math.Cos(lat))
		out[i] = []float64{lon * 180 / math.Pi, lat * 180 / math.Pi}
	}
	return out, nil
}

type failingReprojector struct{}

func (failingReprojector) Reproject([][]float64, model.CRS) ([][]float64, error) {
	return nil, errors.New("reprojection should not be needed")
}

type countingSimplifier struct {
	tolerance float64
}

func (s *countingSimplifier) Simplify(ring [][]float64, tolerance float64) ([][]float64, error) {
	s.tolerance = tolerance
	return [][]float64{ring[0], ring[len(ring)/4], ring[len(ring)/2], ring[3*len(ring)/4], ring[len(ring)-1]}, nil
}

// Actual tests

func TestBuilder_Sinusoidal(t *testing.T) {
	// Mock
	reprojector := &sinusoidalReprojector{}
	simplifier := &countingSimplifier{}
	builder := Builder{Reprojector: reprojector, Simplifier: simplifier, DensifyFactor: 10, SimplifyTolerance: 0.0006}
	meta := sinusoidalMetadata(1200, -8895604.157333, 4447802.078667)

	// Tested code
	grid, err := builder.Build(meta)

	// Asserts
	require.NoError(t, err)
	assert.Equal(t, 1, reprojector.calls)
	assert.Equal(t, 41, reprojector.lastCount)
	assert.Equal(t, 0.0006, simplifier.tolerance)
	assert.Equal(t, [2]int{1200, 1200}, grid.Shape)
	assert.Equal(t, model.WKTCRS(model.SinusoidalWKT), grid.CRS)
	assert.InDelta(t, PixelSize1000M, grid.Transform[0], 1e-12)

	polygon, ok := grid.Geometry.(*geojson.Polygon)
	require.True(t, ok)
	ring := polygon.Coordinates[0]
	assert.Equal(t, ring[0], ring[len(ring)-1])
	for _, p := range ring {
		assert.Equal(t, p[0], math.Round(p[0]*1e7)/1e7)
		assert.True(t, p[1] >= 29.99 && p[1] <= 40.01, "latitude %v", p[1])
	}
	assert.InDelta(t, 30.0, grid.Bbox[1], 1e-6)
	assert.InDelta(t, 40.0, grid.Bbox[3], 1e-6)
}

func TestBuilder_Geographic(t *testing.T) {
	// Mock
	builder := Builder{Reprojector: failingReprojector{}, DensifyFactor: 1, Strategy: Normalize}

	// Tested code
	grid, err := builder.Build(geographicMetadata(11, 5, 2400))

	// Asserts
	require.NoError(t, err)
	assert.Equal(t, model.EPSGCRS(4326), grid.CRS)
	polygon, ok := grid.Geometry.(*geojson.Polygon)
	require.True(t, ok)
	assert.Equal(t, [][]float64{{-70, 40}, {-70, 30}, {-60, 30}, {-60, 40}, {-70, 40}}, polygon.Coordinates[0])
	assert.Equal(t, []float64{-70, 30, -60, 40}, grid.Bbox)
}

func TestBuilder_GeographicAntimeridian(t *testing.T) {
	builder := Builder{Reprojector: failingReprojector{}, DensifyFactor: 1}

	grid, err := builder.Build(geographicMetadata(35, 5, 2400))

	require.NoError(t, err)
	// the last geographic tile ends exactly on +180 and needs no split
	_, ok := grid.Geometry.(*geojson.Polygon)
	assert.True(t, ok)
	assert.Equal(t, []float64{170, 30, 180, 40}, grid.Bbox)
}

func TestBuilder_UnsupportedEdge(t *testing.T) {
	builder := Builder{Reprojector: &sinusoidalReprojector{}}

	_, err := builder.Build(sinusoidalMetadata(600, 0, 0))

	assert.True(t, errors.Is(err, model.ErrUnsupportedInput))
}

func TestBuilder_SplitsCrossingTile(t *testing.T) {
	// Mock: h35 tile in the sinusoidal grid near the pole reaches past the antimeridian
	builder := Builder{Reprojector: wrappingReprojector{}, DensifyFactor: 4}
	meta := sinusoidalMetadata(1200, 0, 0)

	// Tested code
	grid, err := builder.Build(meta)

	// Asserts
	require.NoError(t, err)
	multi, ok := grid.Geometry.(*geojson.MultiPolygon)
	require.True(t, ok)
	assert.Len(t, multi.Coordinates, 2)
	assert.Equal(t, -180.0, grid.Bbox[0])
	assert.Equal(t, 180.0, grid.Bbox[2])
}

// wrappingReprojector places the tile's ring across the antimeridian with wrapped longitudes
type wrappingReprojector struct{}

func (wrappingReprojector) Reproject(ring [][]float64, from model.CRS) ([][]float64, error) {
	out := make([][]float64, len(ring))
	for i, p := range ring {
		lon := 175 + p[0]/TileSize*10
		if lon > 180 {
			lon -= 360
		}
		out[i] = []float64{lon, 10 + p[1]/TileSize*10}
	}
	return out, nil
}
