package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

//Up00001 creates the granules table and its spatial index
func Up00001(tx *sql.Tx) error {
	// This code is executed when the migration is applied.
	_, err := tx.Exec(`
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS public.granules
	(
		id character varying(64) NOT NULL PRIMARY KEY,
		product character varying(16) NOT NULL,
		version character varying(8) NOT NULL,
		horizontal_tile smallint NOT NULL,
		vertical_tile smallint NOT NULL,
		tile_id character varying(16) NOT NULL,
		acquisition_datetime timestamp with time zone,
		start_datetime timestamp with time zone NOT NULL,
		end_datetime timestamp with time zone NOT NULL,
		production_datetime timestamp with time zone NOT NULL,
		cloud_cover smallint,
		source_href text NOT NULL,
		metadata_href text,
		bounds geometry(Geometry, 4326) NOT NULL
	)
	WITH (
		OIDS = FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_granules_bounds
	ON public.granules USING gist
	(bounds);

	CREATE INDEX IF NOT EXISTS idx_granules_product_start
	ON public.granules (product, start_datetime);
	`)
	return err
}

//Down00001 drops the granules table
func Down00001(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	_, err := tx.Exec(`DROP TABLE IF EXISTS public.granules;`)
	return err
}
