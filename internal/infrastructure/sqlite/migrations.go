package sqlite

import "database/sql"

// Schema for the local store. The document table is a single-slot keyed
// store: the web client only ever keeps one working document, carried
// under the fixed key "current". Seller presets are stored as their JSON
// payloads; the schema never needs to know the seller field list.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
    key        TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS seller_presets (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    payload    TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_seller_presets_name ON seller_presets(name);
`

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
