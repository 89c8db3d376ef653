package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00003, Down00003)
}

//Up00003 keys granules by identifier without the production segment so reprocessed
//granules replace their older production instead of adding a row
func Up00003(tx *sql.Tx) error {
	// This code is executed when the migration is applied.
	_, err := tx.Exec(`
		ALTER TABLE public.granules ADD COLUMN IF NOT EXISTS granule_key text;
		UPDATE public.granules SET granule_key = regexp_replace(id, '\.[0-9]{7}[0-9]*$', '');
		DELETE FROM public.granules older USING public.granules newer
			WHERE older.granule_key = newer.granule_key
			AND (older.production_datetime, older.id) < (newer.production_datetime, newer.id);
		ALTER TABLE public.granules ALTER COLUMN granule_key SET NOT NULL;
		CREATE UNIQUE INDEX IF NOT EXISTS granules_granule_key_idx ON public.granules (granule_key);
		`)
	return err
}

//Down00003 removes the granule key.
func Down00003(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	_, err := tx.Exec(`
		DROP INDEX IF EXISTS granules_granule_key_idx;
		ALTER TABLE public.granules DROP COLUMN IF EXISTS granule_key;
		`)
	return err
}
