package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// DocType represents the kind of rendered document.
type DocType string

const (
	DocTypeInvoice DocType = "invoice"
	DocTypeLedger  DocType = "ledger"
)

// RenderRecord represents one rendered document.
type RenderRecord struct {
	ID         int64
	DocType    DocType
	DocRef     string
	Year       int
	OutputPath string
	Engine     string
	RenderedAt time.Time
}

// RenderHistory manages the render history table.
type RenderHistory struct {
	conn *Connection
}

// NewRenderHistory creates a RenderHistory over the given connection.
func NewRenderHistory(conn *Connection) *RenderHistory {
	return &RenderHistory{conn: conn}
}

// Record stores a render operation.
func (h *RenderHistory) Record(record RenderRecord) error {
	query := `
		INSERT INTO render_history (doc_type, doc_ref, year, output_path, engine)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := h.conn.Exec(query,
		string(record.DocType),
		record.DocRef,
		record.Year,
		record.OutputPath,
		record.Engine,
	)

	if err != nil {
		return fmt.Errorf("failed to record render: %w", err)
	}

	return nil
}

// Last retrieves the most recent render of a document, or nil when the
// document was never rendered.
func (h *RenderHistory) Last(docType DocType, docRef string) (*RenderRecord, error) {
	query := `
		SELECT id, doc_type, doc_ref, year, output_path, engine, rendered_at
		FROM render_history
		WHERE doc_type = ? AND doc_ref = ?
		ORDER BY rendered_at DESC, id DESC
		LIMIT 1
	`

	var record RenderRecord
	var docTypeStr string

	err := h.conn.QueryRow(query, string(docType), docRef).Scan(
		&record.ID,
		&docTypeStr,
		&record.DocRef,
		&record.Year,
		&record.OutputPath,
		&record.Engine,
		&record.RenderedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get render record: %w", err)
	}

	record.DocType = DocType(docTypeStr)
	return &record, nil
}

// ListByYear retrieves all renders of a bookkeeping year, newest first.
func (h *RenderHistory) ListByYear(year int) ([]RenderRecord, error) {
	query := `
		SELECT id, doc_type, doc_ref, year, output_path, engine, rendered_at
		FROM render_history
		WHERE year = ?
		ORDER BY rendered_at DESC, id DESC
	`

	rows, err := h.conn.Query(query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list renders: %w", err)
	}
	defer rows.Close()

	var records []RenderRecord
	for rows.Next() {
		var record RenderRecord
		var docTypeStr string

		if err := rows.Scan(
			&record.ID,
			&docTypeStr,
			&record.DocRef,
			&record.Year,
			&record.OutputPath,
			&record.Engine,
			&record.RenderedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan render record: %w", err)
		}

		record.DocType = DocType(docTypeStr)
		records = append(records, record)
	}

	return records, rows.Err()
}

// Stats represents render statistics for a bookkeeping year.
type Stats struct {
	TotalInvoices int
	TotalLedgers  int
	LastRender    sql.NullString
}

// GetStats retrieves render statistics for a year.
func (h *RenderHistory) GetStats(year int) (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(
		`SELECT COUNT(*) FROM render_history WHERE year = ? AND doc_type = 'invoice'`, year,
	).Scan(&stats.TotalInvoices)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice render count: %w", err)
	}

	err = h.conn.QueryRow(
		`SELECT COUNT(*) FROM render_history WHERE year = ? AND doc_type = 'ledger'`, year,
	).Scan(&stats.TotalLedgers)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger render count: %w", err)
	}

	err = h.conn.QueryRow(
		`SELECT MAX(rendered_at) FROM render_history WHERE year = ?`, year,
	).Scan(&stats.LastRender)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last render time: %w", err)
	}

	return &stats, nil
}

// NumberRegistry manages the per-year invoice number registry.
type NumberRegistry struct {
	conn *Connection
}

// NewNumberRegistry creates a NumberRegistry over the given connection.
func NewNumberRegistry(conn *Connection) *NumberRegistry {
	return &NumberRegistry{conn: conn}
}

// Record stores the last issued invoicenumber for a year, replacing any
// earlier value.
func (r *NumberRegistry) Record(year int, invoicenumber string) error {
	query := `
		INSERT INTO number_registry (year, last_number)
		VALUES (?, ?)
		ON CONFLICT(year) DO UPDATE SET
			last_number = excluded.last_number,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.conn.Exec(query, year, invoicenumber); err != nil {
		return fmt.Errorf("failed to record invoicenumber: %w", err)
	}

	return nil
}

// Last returns the last issued invoicenumber for a year. The second return
// is false when the year has no entry.
func (r *NumberRegistry) Last(year int) (string, bool, error) {
	query := `SELECT last_number FROM number_registry WHERE year = ?`

	var number string
	err := r.conn.QueryRow(query, year).Scan(&number)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get last invoicenumber: %w", err)
	}

	return number, true, nil
}

// NextNumber derives the next invoicenumber for a year: the recorded last
// number incremented, or "<year>001" for a fresh year.
func (r *NumberRegistry) NextNumber(year int) (string, error) {
	last, ok, err := r.Last(year)
	if err != nil {
		return "", err
	}
	if !ok {
		last = fmt.Sprintf("%d000", year)
	}

	n, err := strconv.Atoi(last)
	if err != nil {
		return "", fmt.Errorf("malformed invoicenumber %q in registry: %w", last, err)
	}

	return strconv.Itoa(n + 1), nil
}
