package migrations

import "embed"

// KVSchema is the file holding the key/value table definition.
const KVSchema = "001_kv_store.sql"

// FS contains the embedded SQLite schema for cart storage.
//
//go:embed *.sql
var FS embed.FS
