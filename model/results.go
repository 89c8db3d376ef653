package model

import (
	"github.com/venicegeo/geojson-go/geojson"
)

// BasicGranuleResult holds the fields common to every granule feature
type BasicGranuleResult struct {
	ID         string
	Geometry   interface{}
	Bbox       []float64
	Product    string
	Version    string
	CloudCover *int
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (br BasicGranuleResult) GeoJSONFeature() (*geojson.Feature, error) {
	props := map[string]interface{}{
		"viirs:product": br.Product,
		"viirs:version": br.Version,
	}
	if br.CloudCover != nil {
		props["eo:cloud_cover"] = *br.CloudCover
	}
	f := geojson.NewFeature(br.Geometry, br.ID, props)
	if len(br.Bbox) == 4 {
		f.Bbox = geojson.BoundingBox(br.Bbox)
	} else {
		f.Bbox = f.ForceBbox()
	}
	return f, nil
}

// GranuleResult is the full hand-off record for a converted granule
type GranuleResult struct {
	BasicGranuleResult
	TemporalData
	TileData
	ProjectionData
	Assets
}

// NewGranuleResult joins a granule's metadata with its derived grid geometry
func NewGranuleResult(meta Metadata, grid GridGeometry, assets Assets) GranuleResult {
	return GranuleResult{
		BasicGranuleResult: BasicGranuleResult{
			ID:         meta.ID,
			Geometry:   grid.Geometry,
			Bbox:       grid.Bbox,
			Product:    meta.Product,
			Version:    meta.Version,
			CloudCover: meta.CloudCover,
		},
		TemporalData: TemporalData{
			Acquired: meta.AcquisitionDatetime,
			Start:    meta.StartDatetime,
			End:      meta.EndDatetime,
			Created:  meta.ProductionDatetime,
			Updated:  meta.UpdatedDatetime,
		},
		TileData: TileData{
			HorizontalTile: meta.HorizontalTile,
			VerticalTile:   meta.VerticalTile,
			TileID:         meta.TileID,
		},
		ProjectionData: ProjectionData{
			Transform: grid.Transform,
			Shape:     grid.Shape,
			CRS:       grid.CRS,
		},
		Assets: assets,
	}
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (result GranuleResult) GeoJSONFeature() (*geojson.Feature, error) {
	feature, err := result.BasicGranuleResult.GeoJSONFeature()
	if err != nil {
		return nil, err
	}

	mixins := []GeoJSONFeatureMixin{result.TemporalData, result.TileData, result.ProjectionData}
	if result.Assets != nil {
		mixins = append(mixins, result.Assets)
	}
	for _, mixin := range mixins {
		if err = mixin.Apply(feature); err != nil {
			return nil, err
		}
	}

	return feature, nil
}

// MultiGranuleResult is a container type for bundling multiple results together,
// e.g. as results from a search endpoint
type MultiGranuleResult struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiGranuleResult) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
