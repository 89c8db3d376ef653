package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venicegeo/bf-viirs/cog"
	"github.com/venicegeo/bf-viirs/footprint"
	"github.com/venicegeo/bf-viirs/fragments"
	"github.com/venicegeo/bf-viirs/granule"
	"github.com/venicegeo/bf-viirs/granule/granuletest"
	"github.com/venicegeo/bf-viirs/metadata"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/bf-viirs/util"
)

const (
	nightLightsHref = "/data/VNP46A2.A2019054.h11v05.001.2019060120000.h5"
	nightLightsPath = "HDFEOS/GRIDS/VNP_Grid_DNB/Data Fields/DNB_BRDF-Corrected_NTL"
)

const nightLightsStruct = `GROUP=GridStructure
	GROUP=GRID_1
		GridName="VNP_Grid_DNB"
		XDim=2
		YDim=2
		UpperLeftPointMtrs=(-70000000.000000,40000000.000000)
		LowerRightMtrs=(-60000000.000000,30000000.000000)
	END_GROUP=GRID_1
END_GROUP=GridStructure
END
`

type memoryWriter struct {
	rasters map[string]cog.Raster
}

func (w *memoryWriter) Write(path string, raster cog.Raster) error {
	w.rasters[path] = raster
	return nil
}

func nightLightsSource() *granuletest.Source {
	return &granuletest.Source{
		Struct: nightLightsStruct,
		Attrs: map[string]string{
			"localgranuleid":       "VNP46A2.A2019054.h11v05.001.2019060120000.h5",
			"shortname":            "VNP46A2",
			"versionid":            "1",
			"gringpointlatitude":   "40 30 30 40",
			"gringpointlongitude":  "-70 -70 -60 -60",
			"starttime":            "2019-02-23 00:00:00.000",
			"endtime":              "2019-02-23 23:59:59.000",
			"productiontime":       "2019-03-01 12:00:00.000",
			"horizontaltilenumber": "11",
			"verticaltilenumber":   "5",
			"tileid":               "51011005",
		},
		Arrays: map[string]*granule.Array{
			nightLightsPath: {Rows: 2, Cols: 2, Data: []int16{-1, 12, 30, 4}, Fill: func() *float64 { v := -1.0; return &v }()},
		},
	}
}

func testConverter(source *granuletest.Source, writer cog.Writer) *Converter {
	ctx := &util.BasicLogContext{}
	catalog, _ := fragments.Load()
	return &Converter{
		Resolver: &metadata.Resolver{
			Open:    source.Opener(nil),
			Exists:  func(string) (bool, error) { return false, nil },
			Context: ctx,
		},
		Builder: &footprint.Builder{DensifyFactor: 2, Strategy: footprint.Split},
		Exporter: &cog.Exporter{
			Open:      source.Opener(nil),
			Writer:    writer,
			Fragments: catalog,
			Context:   ctx,
		},
		Context: ctx,
	}
}

func TestConverter_Describe(t *testing.T) {
	// Mock
	source := nightLightsSource()

	// Tested code
	result, err := testConverter(source, &memoryWriter{}).Describe(nightLightsHref)

	// Asserts
	require.NoError(t, err)
	assert.True(t, source.Closed)
	assert.Equal(t, "VNP46A2.A2019054.h11v05.001.2019060120000", result.ID)
	assert.Equal(t, model.EPSGCRS(4326), result.CRS)
	assert.Equal(t, model.Transform{5, 0, -70, 0, -5, 40}, result.Transform)
	assert.Equal(t, []float64{-70, 30, -60, 40}, result.Bbox)
	require.Len(t, result.Assets, 1)
	assert.Equal(t, HDF5AssetKey, result.Assets[0].Key)
	assert.Equal(t, nightLightsHref, result.Assets[0].Href)

	feature, err := result.GeoJSONFeature()
	require.NoError(t, err)
	assert.Equal(t, 4326, feature.Properties["proj:epsg"])
}

func TestConverter_Convert(t *testing.T) {
	// Mock
	writer := &memoryWriter{rasters: map[string]cog.Raster{}}

	// Tested code
	result, err := testConverter(nightLightsSource(), writer).Convert(nightLightsHref, "/out")

	// Asserts
	require.NoError(t, err)
	tilePath := "/out/VNP46A2.A2019054.h11v05.001.2019060120000_DNB_BRDF-Corrected_NTL.tif"
	require.Contains(t, writer.rasters, tilePath)
	raster := writer.rasters[tilePath]
	assert.Equal(t, result.Transform, raster.Transform)
	assert.Equal(t, -1.0, *raster.Nodata)

	require.Len(t, result.Assets, 2)
	assert.Equal(t, "DNB_BRDF-Corrected_NTL", result.Assets[1].Key)
	assert.Equal(t, "BRDF corrected day/night band night time lights", result.Assets[1].Title)
}

func TestSourceAssets_Sidecar(t *testing.T) {
	meta := model.Metadata{XMLHref: "/data/granule.h5.xml"}

	assets := SourceAssets("/data/granule.h5", meta)

	require.Len(t, assets, 2)
	assert.Equal(t, MetadataAssetKey, assets[1].Key)
	assert.Equal(t, model.XML, assets[1].MediaType)
	assert.Equal(t, "Earth Observing System Data and Information System (EOSDIS) Metadata", assets[1].Title)
}
