package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store is the ordered table of session records backed by a CSV file.
// A record's position is its identity for updates and deletes.
// The file is rewritten after every mutation. Store is not safe for
// concurrent use.
type Store struct {
	path    string
	records []Record
}

// NewStore creates an empty store for the file at path without reading it.
func NewStore(path string) *Store {
	return &Store{
		path:    path,
		records: []Record{},
	}
}

// Open creates a store and loads the file at path.
func Open(path string) (*Store, error) {
	store := NewStore(path)
	if _, err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory table with the file's contents.
// A missing file loads as an empty table.
func (s *Store) Load() ([]Record, error) {
	records, err := readCSVFile(s.path)
	if err != nil {
		return nil, err
	}
	s.records = records
	slog.Default().Debug("loaded session records", "path", s.path, "count", len(records))
	return s.Records(), nil
}

// Records returns a copy of every record in stored order.
func (s *Store) Records() []Record {
	records := make([]Record, len(s.records))
	copy(records, s.records)
	return records
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// At returns the record at index.
func (s *Store) At(index int) (Record, error) {
	if index < 0 || index >= len(s.records) {
		return Record{}, indexError(index, len(s.records))
	}
	return s.records[index], nil
}

// Add appends a record and saves the table.
func (s *Store) Add(record Record) error {
	s.records = append(s.records, record)
	return s.save()
}

// UpdateAt replaces the record at index and saves the table.
func (s *Store) UpdateAt(index int, record Record) error {
	if index < 0 || index >= len(s.records) {
		return indexError(index, len(s.records))
	}
	s.records[index] = record
	return s.save()
}

// DeleteAt removes the record at index, shifting later records down, and
// saves the table.
func (s *Store) DeleteAt(index int) error {
	if index < 0 || index >= len(s.records) {
		return indexError(index, len(s.records))
	}
	s.records = append(s.records[:index], s.records[index+1:]...)
	return s.save()
}

// Replace swaps the whole table and saves it.
func (s *Store) Replace(records []Record) error {
	s.records = make([]Record, len(records))
	copy(s.records, records)
	return s.save()
}

// save writes the full table. On failure the in-memory table stays ahead of
// the file until the next successful save.
func (s *Store) save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	if err := writeCSVFile(s.path, s.records); err != nil {
		return fmt.Errorf("save session records: %w", err)
	}
	slog.Default().Debug("saved session records", "path", s.path, "count", len(s.records))
	return nil
}
