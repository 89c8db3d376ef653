package db

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/venicegeo/bf-viirs/util"
)

// ConnectionProvider is a function that can provide a database connection
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// Store runs the granule index queries against one database
type Store struct {
	DB      *sqlx.DB
	Queries *Queries
}

// NewStore opens a connection through the provider and loads the queries
func NewStore(ctx util.LogContext, connectionProvider ConnectionProvider) (*Store, error) {
	database, err := connectionProvider(ctx)
	if err != nil {
		return nil, err
	}
	queries, err := LoadQueries()
	if err != nil {
		database.Close()
		return nil, err
	}
	return &Store{DB: sqlx.NewDb(database, "postgres"), Queries: queries}, nil
}

// Upsert implements the index's writer interface
func (s *Store) Upsert(g Granule) (int64, error) {
	return s.Queries.UpsertGranule(s.DB, g)
}

// Get looks a granule up by id
func (s *Store) Get(id string) (*Granule, error) {
	return s.Queries.GetGranuleByID(s.DB, id)
}

// Search runs a granule search
func (s *Store) Search(params SearchParams) ([]Granule, error) {
	return s.Queries.SearchGranules(s.DB, params)
}

// Close closes the underlying connection
func (s *Store) Close() error {
	return s.DB.Close()
}
