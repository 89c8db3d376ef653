package db

import (
	"database/sql"
	"time"
)

// Granule is one row of public.granules. JSON columns are kept as raw text.
// GranuleKey is the identifier without its production segment; it holds one row per granule.
type Granule struct {
	ID                  string         `db:"id"`
	GranuleKey          string         `db:"granule_key"`
	Product             string         `db:"product"`
	Version             string         `db:"version"`
	HorizontalTile      int            `db:"horizontal_tile"`
	VerticalTile        int            `db:"vertical_tile"`
	TileID              string         `db:"tile_id"`
	AcquisitionDatetime sql.NullTime   `db:"acquisition_datetime"`
	StartDatetime       time.Time      `db:"start_datetime"`
	EndDatetime         time.Time      `db:"end_datetime"`
	ProductionDatetime  time.Time      `db:"production_datetime"`
	CloudCover          sql.NullInt64  `db:"cloud_cover"`
	SourceHref          string         `db:"source_href"`
	MetadataHref        sql.NullString `db:"metadata_href"`
	Bounds              string         `db:"bounds"`
	Bbox                string         `db:"bbox"`
	ProjTransform       string         `db:"proj_transform"`
	ProjShape           string         `db:"proj_shape"`
	CRS                 string         `db:"crs"`
}

// SearchParams narrows a granule search. Zero values mean "no constraint" except for Limit.
type SearchParams struct {
	// Bbox is [west, south, east, north]
	Bbox    []float64
	Product string
	Start   time.Time
	End     time.Time
	Limit   int
}
