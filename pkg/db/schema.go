// Package db provides SQLite database management for TIA's derived
// bookkeeping: render history and the invoice number registry. The JSON files
// on disk stay the source of truth; this database only tracks what was
// generated from them.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Render history table
-- Tracks which documents (invoices, ledgers) have been rendered to files
CREATE TABLE IF NOT EXISTS render_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    doc_type TEXT NOT NULL,            -- 'invoice' or 'ledger'
    doc_ref TEXT NOT NULL,             -- invoicenumber or ledger year
    year INTEGER NOT NULL,             -- bookkeeping year
    output_path TEXT NOT NULL,         -- path of the rendered file
    engine TEXT NOT NULL,              -- 'latex' or 'gofpdf'
    rendered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_render_history_doc
    ON render_history(doc_type, doc_ref);

CREATE INDEX IF NOT EXISTS idx_render_history_year
    ON render_history(year);

-- Invoice number registry
-- Stores the last issued invoicenumber per bookkeeping year
CREATE TABLE IF NOT EXISTS number_registry (
    year INTEGER PRIMARY KEY,
    last_number TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
