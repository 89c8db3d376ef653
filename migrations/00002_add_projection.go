package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00002, Down00002)
}

//Up00002 adds the native grid columns needed to rebuild a granule's projection fields
func Up00002(tx *sql.Tx) error {
	// This code is executed when the migration is applied.
	_, err := tx.Exec(`
		ALTER TABLE public.granules ADD COLUMN IF NOT EXISTS bbox json NOT NULL DEFAULT '[]';
		ALTER TABLE public.granules ADD COLUMN IF NOT EXISTS proj_transform json NOT NULL DEFAULT '[]';
		ALTER TABLE public.granules ADD COLUMN IF NOT EXISTS proj_shape json NOT NULL DEFAULT '[]';
		ALTER TABLE public.granules ADD COLUMN IF NOT EXISTS crs text NOT NULL DEFAULT '';
		`)
	return err
}

//Down00002 removes the columns.
func Down00002(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	_, err := tx.Exec(`
		ALTER TABLE public.granules DROP COLUMN IF EXISTS bbox;
		ALTER TABLE public.granules DROP COLUMN IF EXISTS proj_transform;
		ALTER TABLE public.granules DROP COLUMN IF EXISTS proj_shape;
		ALTER TABLE public.granules DROP COLUMN IF EXISTS crs;
		`)
	return err
}
