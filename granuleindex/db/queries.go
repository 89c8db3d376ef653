package db

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/qustavo/dotsql"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// Query names
const (
	upsertGranuleQuery  = "upsert-granule"
	getGranuleByIDQuery = "get-granule-by-id"
	searchGranulesQuery = "search-granules"
)

// DefaultSearchLimit caps the number of granules returned by a search
const DefaultSearchLimit = 1000

var world = []float64{-180, -90, 180, 90}

// Queries holds the named SQL statements of the granule index
type Queries struct {
	dot *dotsql.DotSql
}

// LoadQueries parses every embedded .sql file
func LoadQueries() (*Queries, error) {
	var combined string
	err := fs.WalkDir(queriesFS, "queries", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}
		content, err := queriesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		combined += string(content) + "\n"
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load query files: %w", err)
	}

	dot, err := dotsql.LoadFromString(combined)
	if err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}
	return &Queries{dot: dot}, nil
}

// raw returns a named query rebound to Postgres placeholders
func (q *Queries) raw(name string) (string, error) {
	query, err := q.dot.Raw(name)
	if err != nil {
		return "", fmt.Errorf("query not found: %s", name)
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), nil
}

// UpsertGranule inserts a granule or replaces an older production of it, matched on GranuleKey.
// It returns the number of rows written, zero when a newer production is already indexed.
func (q *Queries) UpsertGranule(ext sqlx.Execer, g Granule) (int64, error) {
	query, err := q.raw(upsertGranuleQuery)
	if err != nil {
		return 0, err
	}
	result, err := ext.Exec(query,
		g.ID, g.GranuleKey, g.Product, g.Version, g.HorizontalTile, g.VerticalTile, g.TileID,
		g.AcquisitionDatetime, g.StartDatetime, g.EndDatetime, g.ProductionDatetime,
		g.CloudCover, g.SourceHref, g.MetadataHref, g.Bounds, g.Bbox, g.ProjTransform, g.ProjShape, g.CRS)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// GetGranuleByID looks a granule up by its full identifier or by its granule key.
// It returns sql.ErrNoRows when the granule is not indexed.
func (q *Queries) GetGranuleByID(queryer sqlx.Queryer, id string) (*Granule, error) {
	query, err := q.raw(getGranuleByIDQuery)
	if err != nil {
		return nil, err
	}
	granule := Granule{}
	if err = sqlx.Get(queryer, &granule, query, id, id); err != nil {
		return nil, err
	}
	return &granule, nil
}

// SearchGranules returns the granules intersecting the bbox whose time window overlaps [Start, End]
func (q *Queries) SearchGranules(queryer sqlx.Queryer, params SearchParams) ([]Granule, error) {
	query, err := q.raw(searchGranulesQuery)
	if err != nil {
		return nil, err
	}
	bbox := params.Bbox
	if len(bbox) != 4 {
		bbox = world
	}
	end := params.End
	if end.IsZero() {
		end = time.Now().UTC()
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	granules := []Granule{}
	err = sqlx.Select(queryer, &granules, query,
		bbox[0], bbox[1], bbox[2], bbox[3],
		params.Product, params.Product,
		end, params.Start, limit)
	return granules, err
}
