// Package archive persists validation reports in a local pebble store,
// keyed by ksuid.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// StoreError is the error type for archive failures.
type StoreError struct {
	Message string
}

// Error returns the error message.
func (e *StoreError) Error() string {
	return e.Message
}

// ErrReportNotFound is returned when no report exists under the given id.
var ErrReportNotFound = &StoreError{"report not found"}

// LineOutcome is the per-line verdict carried by a report.
type LineOutcome struct {
	Line  int    `json:"line"`
	Raw   string `json:"raw"`
	Valid bool   `json:"valid"`
	Type  string `json:"type,omitempty"`
	Error string `json:"error,omitempty"`
}

// Report is one archived validation run.
type Report struct {
	ID        string         `json:"id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Source    string         `json:"source,omitempty"`
	Lines     int            `json:"lines"`
	Valid     int            `json:"valid"`
	Invalid   int            `json:"invalid"`
	ByType    map[string]int `json:"by_type,omitempty"`
	Records   []LineOutcome  `json:"records"`
}

// Store persists reports on disk.
type Store struct {
	db *pebble.DB
}

// Open opens the report store at dir, creating it when absent.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening report store: %w", err)
	}

	return &Store{db: db}, nil
}

// Save stores the report under a fresh id, stamping ID and CreatedAt on the
// report. The generated id is returned.
func (s *Store) Save(report *Report) (string, error) {
	id := ksuid.New()
	report.ID = id.String()
	report.CreatedAt = time.Now().UTC()

	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	if err := s.db.Set(id.Bytes(), data, pebble.NoSync); err != nil {
		return "", fmt.Errorf("storing report: %w", err)
	}

	return report.ID, nil
}

// Get loads the report stored under id. Unknown and unparseable ids both
// come back as ErrReportNotFound.
func (s *Store) Get(id string) (*Report, error) {
	key, err := ksuid.Parse(id)
	if err != nil {
		return nil, ErrReportNotFound
	}

	data, closer, err := s.db.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("loading report: %w", err)
	}
	defer closer.Close()

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}

	return &report, nil
}

// Delete removes the report stored under id.
func (s *Store) Delete(id string) error {
	key, err := ksuid.Parse(id)
	if err != nil {
		return ErrReportNotFound
	}

	// pebble deletes are blind; probe first so callers can tell a removal
	// from a miss
	_, closer, err := s.db.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("loading report: %w", err)
	}
	if err := closer.Close(); err != nil {
		return fmt.Errorf("loading report: %w", err)
	}

	if err := s.db.Delete(key.Bytes(), pebble.NoSync); err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}

	return nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}
