package granuleindex

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/venicegeo/bf-viirs/convert"
	"github.com/venicegeo/bf-viirs/granuleindex/db"
	"github.com/venicegeo/bf-viirs/model"
	"github.com/venicegeo/bf-viirs/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Store is the granule index as seen by the handlers and the importer
type Store interface {
	Upsert(g db.Granule) (int64, error)
	Get(id string) (*db.Granule, error)
	Search(params db.SearchParams) ([]db.Granule, error)
}

// Context is the context of a granule index operation
type Context struct {
	Store     Store
	sessionID string
}

// AppName returns the application name
func (c *Context) AppName() string {
	return "bf-viirs"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = util.PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

const epsgPrefix = "EPSG:"

func parseCRS(text string) model.CRS {
	if strings.HasPrefix(text, epsgPrefix) {
		if code, err := strconv.Atoi(strings.TrimPrefix(text, epsgPrefix)); err == nil {
			return model.EPSGCRS(code)
		}
	}
	return model.WKTCRS(text)
}

// rowFromResult flattens a granule result into an index row
func rowFromResult(result model.GranuleResult, sourceHref, metadataHref string) (db.Granule, error) {
	id, err := model.ParseGranuleID(result.ID)
	if err != nil {
		return db.Granule{}, err
	}
	row := db.Granule{
		ID:                 result.ID,
		GranuleKey:         id.String(),
		Product:            result.Product,
		Version:            result.Version,
		HorizontalTile:     result.HorizontalTile,
		VerticalTile:       result.VerticalTile,
		TileID:             result.TileID,
		StartDatetime:      result.Start,
		EndDatetime:        result.End,
		ProductionDatetime: result.Created,
		SourceHref:         sourceHref,
		CRS:                result.CRS.String(),
	}
	if result.Acquired != nil {
		row.AcquisitionDatetime = sql.NullTime{Time: *result.Acquired, Valid: true}
	}
	if result.CloudCover != nil {
		row.CloudCover = sql.NullInt64{Int64: int64(*result.CloudCover), Valid: true}
	}
	if metadataHref != "" {
		row.MetadataHref = sql.NullString{String: metadataHref, Valid: true}
	}

	encoded := make([][]byte, 4)
	for i, value := range []interface{}{result.Geometry, result.Bbox, result.Transform[:], result.Shape[:]} {
		if encoded[i], err = json.Marshal(value); err != nil {
			return db.Granule{}, fmt.Errorf("failed to encode %s for the index: %w", result.ID, err)
		}
	}
	row.Bounds = string(encoded[0])
	row.Bbox = string(encoded[1])
	row.ProjTransform = string(encoded[2])
	row.ProjShape = string(encoded[3])
	return row, nil
}

// resultFromRow rebuilds the granule result of an index row
func resultFromRow(row db.Granule) (*model.GranuleResult, error) {
	geometry, err := geojson.Parse([]byte(row.Bounds))
	if err != nil {
		return nil, fmt.Errorf("unreadable bounds of %s: %w", row.ID, err)
	}
	var bbox []float64
	var transform []float64
	var shape []int
	for _, decode := range []struct {
		text   string
		target interface{}
	}{{row.Bbox, &bbox}, {row.ProjTransform, &transform}, {row.ProjShape, &shape}} {
		if err = json.Unmarshal([]byte(decode.text), decode.target); err != nil {
			return nil, fmt.Errorf("unreadable index row %s: %w", row.ID, err)
		}
	}
	if len(transform) != 6 || len(shape) != 2 {
		return nil, fmt.Errorf("index row %s has transform %v and shape %v", row.ID, transform, shape)
	}

	meta := model.Metadata{
		ID:                 row.ID,
		Product:            row.Product,
		Version:            row.Version,
		StartDatetime:      row.StartDatetime,
		EndDatetime:        row.EndDatetime,
		ProductionDatetime: row.ProductionDatetime,
		HorizontalTile:     row.HorizontalTile,
		VerticalTile:       row.VerticalTile,
		TileID:             row.TileID,
		XMLHref:            row.MetadataHref.String,
	}
	if row.AcquisitionDatetime.Valid {
		acquired := row.AcquisitionDatetime.Time
		meta.AcquisitionDatetime = &acquired
	}
	if row.CloudCover.Valid {
		cloudCover := int(row.CloudCover.Int64)
		meta.CloudCover = &cloudCover
	}
	grid := model.GridGeometry{
		CRS:      parseCRS(row.CRS),
		Shape:    [2]int{shape[0], shape[1]},
		Geometry: geometry,
		Bbox:     bbox,
	}
	copy(grid.Transform[:], transform)

	result := model.NewGranuleResult(meta, grid, convert.SourceAssets(row.SourceHref, meta))
	return &result, nil
}
