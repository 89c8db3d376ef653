package model

import "github.com/venicegeo/geojson-go/geojson"

// MediaType is an enum type for the media types of granule assets
type MediaType string

// COG corresponds to cloud-optimized GeoTIFF subdataset tiles
const COG MediaType = "image/tiff; application=geotiff; profile=cloud-optimized"

// HDF5 corresponds to the source granule
const HDF5 MediaType = "application/x-hdf5"

// XML corresponds to the sidecar descriptive document
const XML MediaType = "application/xml"

// GeoJSONFeatureCreator is an interface for data that can convert itself to a GeoJSON feature
type GeoJSONFeatureCreator interface {
	GeoJSONFeature() (*geojson.Feature, error)
}

// GeoJSONFeatureCollectionCreator is an interface for data that can convert itself to a GeoJSON feature collection
type GeoJSONFeatureCollectionCreator interface {
	GeoJSONFeatureCollection() (*geojson.FeatureCollection, error)
}

// GeoJSONFeatureMixin is an interface for data that can be used to augment an existing GeoJSON feature
type GeoJSONFeatureMixin interface {
	Apply(*geojson.Feature) error
}
