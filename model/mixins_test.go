package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/geojson-go/geojson"
)

func TestTemporalData_Apply(t *testing.T) {
	// Mock
	feature := geojson.NewFeature(nil, "test-id", nil)
	acquired := time.Date(2022, 4, 7, 0, 0, 0, 0, time.UTC)
	data := TemporalData{
		Acquired: &acquired,
		Start:    time.Date(2022, 4, 7, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2022, 4, 22, 23, 59, 59, 0, time.UTC),
		Created:  time.Date(2022, 4, 23, 8, 9, 0, 0, time.UTC),
	}

	// Tested code
	err := data.Apply(feature)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "2022-04-07T00:00:00Z", feature.PropertyString("datetime"))
	assert.Equal(t, "2022-04-07T00:00:00Z", feature.PropertyString("start_datetime"))
	assert.Equal(t, "2022-04-22T23:59:59Z", feature.PropertyString("end_datetime"))
	assert.Equal(t, "2022-04-23T08:09:00Z", feature.PropertyString("created"))
	_, hasUpdated := feature.Properties["updated"]
	assert.False(t, hasUpdated)
}

func TestTemporalData_Apply_NoAcquired(t *testing.T) {
	// Mock
	feature := geojson.NewFeature(nil, "test-id", nil)
	data := TemporalData{Start: time.Unix(0, 0), End: time.Unix(10, 0), Created: time.Unix(20, 0)}

	// Tested code
	err := data.Apply(feature)

	// Asserts
	assert.Nil(t, err)
	value, ok := feature.Properties["datetime"]
	assert.True(t, ok)
	assert.Nil(t, value)
}

func TestTileData_Apply(t *testing.T) {
	// Mock
	feature := geojson.NewFeature(nil, "test-id", nil)
	data := TileData{HorizontalTile: 11, VerticalTile: 5, TileID: "51011005"}

	// Tested code
	err := data.Apply(feature)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, 11, feature.Properties["viirs:horizontal-tile"])
	assert.Equal(t, 5, feature.Properties["viirs:vertical-tile"])
	assert.Equal(t, "51011005", feature.PropertyString("viirs:tile-id"))
}

func TestProjectionData_Apply_WKT(t *testing.T) {
	// Mock
	feature := geojson.NewFeature(nil, "test-id", nil)
	data := ProjectionData{
		Transform: Transform{463.312716, 0, -10007554.7, 0, -463.312716, 5559752.6},
		Shape:     [2]int{2400, 2400},
		CRS:       WKTCRS(SinusoidalWKT),
	}

	// Tested code
	err := data.Apply(feature)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, []float64{463.312716, 0, -10007554.7, 0, -463.312716, 5559752.6}, feature.Properties["proj:transform"])
	assert.Equal(t, []int{2400, 2400}, feature.Properties["proj:shape"])
	assert.Nil(t, feature.Properties["proj:epsg"])
	assert.Equal(t, SinusoidalWKT, feature.PropertyString("proj:wkt2"))
}

func TestProjectionData_Apply_EPSG(t *testing.T) {
	// Mock
	feature := geojson.NewFeature(nil, "test-id", nil)
	data := ProjectionData{CRS: EPSGCRS(4326)}

	// Tested code
	err := data.Apply(feature)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, 4326, feature.Properties["proj:epsg"])
	_, hasWKT := feature.Properties["proj:wkt2"]
	assert.False(t, hasWKT)
}

func TestProjectionData_Apply_BadCRS(t *testing.T) {
	feature := geojson.NewFeature(nil, "test-id", nil)

	assert.NotNil(t, ProjectionData{}.Apply(feature))
	assert.NotNil(t, ProjectionData{CRS: CRS{EPSG: 4326, WKT: "x"}}.Apply(feature))
}

func TestAssets_Apply(t *testing.T) {
	// Mock
	feature := geojson.NewFeature(nil, "test-id", nil)
	assets := Assets{
		{Key: "FireMask", Href: "/out/VNP14A1_FireMask.tif", MediaType: COG, Roles: []string{"data"}, Title: "Fire mask",
			Extra: map[string]interface{}{"classification:classes": []string{"a"}}},
		{Key: "hdf5", Href: "/in/VNP14A1.h5", MediaType: HDF5},
	}

	// Tested code
	err := assets.Apply(feature)

	// Asserts
	assert.Nil(t, err)
	out := feature.Properties["assets"].(map[string]interface{})
	fireMask := out["FireMask"].(map[string]interface{})
	assert.Equal(t, "/out/VNP14A1_FireMask.tif", fireMask["href"])
	assert.Equal(t, string(COG), fireMask["type"])
	assert.Equal(t, []string{"data"}, fireMask["roles"])
	assert.Equal(t, "Fire mask", fireMask["title"])
	assert.Equal(t, []string{"a"}, fireMask["classification:classes"])
	hdf := out["hdf5"].(map[string]interface{})
	_, hasRoles := hdf["roles"]
	assert.False(t, hasRoles)
}
