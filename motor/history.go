package motor

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// History records completed executions in a sqlite database. A nil
// *History is valid and records nothing, so the dispatcher never has to
// care whether history is enabled.
type History struct {
	db *sql.DB
}

// HistoryRecord is one stored execution.
type HistoryRecord struct {
	Timestamp   time.Time
	Method      string
	URL         string
	Status      int
	DurationMS  int64
	Fingerprint uint64
}

// DefaultHistoryPath returns ~/.quiver/history.db.
func DefaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".quiver", "history.db"), nil
}

// OpenHistory opens (and creates, if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	h := &History{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS executions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		status INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		fingerprint TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_executions_timestamp ON executions(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_executions_fingerprint ON executions(fingerprint);
	`
	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// Record stores one completed execution. status 0 means the transport
// failed before producing a response.
func (h *History) Record(req Request, status int, elapsed time.Duration) error {
	if h == nil {
		return nil
	}
	_, err := h.db.Exec(
		`INSERT INTO executions (timestamp, method, url, status, duration_ms, fingerprint)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), req.Method, req.URL, status, elapsed.Milliseconds(),
		fmt.Sprintf("%016x", req.Fingerprint()),
	)
	if err != nil {
		return fmt.Errorf("failed to record execution: %w", err)
	}
	return nil
}

// Recent returns up to limit executions, newest first.
func (h *History) Recent(limit int) ([]HistoryRecord, error) {
	if h == nil {
		return nil, nil
	}
	rows, err := h.db.Query(
		`SELECT timestamp, method, url, status, duration_ms, fingerprint
		 FROM executions ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var (
			rec HistoryRecord
			fp  string
		)
		if err := rows.Scan(&rec.Timestamp, &rec.Method, &rec.URL, &rec.Status, &rec.DurationMS, &fp); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		_, _ = fmt.Sscanf(fp, "%x", &rec.Fingerprint)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (h *History) Close() error {
	if h == nil {
		return nil
	}
	return h.db.Close()
}
