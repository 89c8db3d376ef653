package model

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// TemporalData is a mixin holding the observation window and file timestamps
type TemporalData struct {
	Acquired *time.Time
	Start    time.Time
	End      time.Time
	Created  time.Time
	Updated  *time.Time
}

// Apply implements the GeoJSONFeatureMixin interface
func (td TemporalData) Apply(feature *geojson.Feature) error {
	if td.Acquired != nil {
		feature.Properties["datetime"] = FormatGranuleTime(*td.Acquired)
	} else {
		feature.Properties["datetime"] = nil
	}
	feature.Properties["start_datetime"] = FormatGranuleTime(td.Start)
	feature.Properties["end_datetime"] = FormatGranuleTime(td.End)
	feature.Properties["created"] = FormatGranuleTime(td.Created)
	if td.Updated != nil {
		feature.Properties["updated"] = FormatGranuleTime(*td.Updated)
	}
	return nil
}

// TileData is a mixin holding the position of the granule in the tiling scheme
type TileData struct {
	HorizontalTile int
	VerticalTile   int
	TileID         string
}

// Apply implements the GeoJSONFeatureMixin interface
func (td TileData) Apply(feature *geojson.Feature) error {
	feature.Properties["viirs:horizontal-tile"] = td.HorizontalTile
	feature.Properties["viirs:vertical-tile"] = td.VerticalTile
	feature.Properties["viirs:tile-id"] = td.TileID
	return nil
}

// ProjectionData is a mixin holding the native grid georeferencing
type ProjectionData struct {
	Transform Transform
	Shape     [2]int
	CRS       CRS
}

// Apply implements the GeoJSONFeatureMixin interface
func (pd ProjectionData) Apply(feature *geojson.Feature) error {
	if err := pd.CRS.Validate(); err != nil {
		return err
	}
	feature.Properties["proj:transform"] = pd.Transform[:]
	feature.Properties["proj:shape"] = []int{pd.Shape[0], pd.Shape[1]}
	if pd.CRS.EPSG != 0 {
		feature.Properties["proj:epsg"] = pd.CRS.EPSG
	} else {
		feature.Properties["proj:epsg"] = nil
		feature.Properties["proj:wkt2"] = pd.CRS.WKT
	}
	return nil
}

// Asset describes one file belonging to a granule
type Asset struct {
	Key       string
	Href      string
	MediaType MediaType
	Roles     []string
	Title     string
	// Extra holds descriptive fields merged from fragments, e.g. classification classes
	Extra map[string]interface{}
}

// Assets is a mixin listing the files of a granule
type Assets []Asset

// Apply implements the GeoJSONFeatureMixin interface
func (assets Assets) Apply(feature *geojson.Feature) error {
	out := map[string]interface{}{}
	for _, asset := range assets {
		props := map[string]interface{}{}
		for k, v := range asset.Extra {
			props[k] = v
		}
		props["href"] = asset.Href
		props["type"] = string(asset.MediaType)
		if len(asset.Roles) > 0 {
			props["roles"] = asset.Roles
		}
		if asset.Title != "" {
			props["title"] = asset.Title
		}
		out[asset.Key] = props
	}
	feature.Properties["assets"] = out
	return nil
}
