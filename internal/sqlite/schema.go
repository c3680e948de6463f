package sqlite

// Schema DDL. The slots table holds one row per named slot.
const (
	createSlots = `CREATE TABLE IF NOT EXISTS slots (
    slot_key TEXT PRIMARY KEY,
    value BLOB,
    updated_at TEXT NOT NULL
);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createSlots,
}

// Slot queries.
const (
	selectSlot = `SELECT value FROM slots WHERE slot_key = ?`
	upsertSlot = `INSERT INTO slots (slot_key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(slot_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)
