// Package store caches parsed mileage files by ELR, fetching and
// parsing raw tables on first access. Parsed files are pure
// memoization, never a source of truth: every entry is re-derivable
// from its raw table.
package store

import (
	"log"
	"sync"

	"github.com/mikeqfu/railwaycodes-utils/mileage"
)

// Fetcher supplies the unparsed mileage table for an ELR.
type Fetcher interface {
	FetchRawTable(elr string) (*mileage.RawTable, error)
}

// FileStore memoizes parsed MileageFiles keyed by ELR. The parse is
// the only producer of entries. Files are immutable once parsed; the
// mutex guards only the memo map, which concurrent readers share.
type FileStore struct {
	fetcher Fetcher
	db      *DB

	mu    sync.RWMutex
	files map[string]*mileage.MileageFile
}

// NewFileStore creates an in-memory store over the given fetcher.
func NewFileStore(fetcher Fetcher) *FileStore {
	return &FileStore{fetcher: fetcher, files: map[string]*mileage.MileageFile{}}
}

// WithDB attaches a SQLite persistence layer consulted between the
// memo map and the fetcher.
func (s *FileStore) WithDB(db *DB) *FileStore {
	s.db = db
	return s
}

// MileageFile returns the parsed mileage file for an ELR: from memory,
// then from the database, then by fetching and parsing the raw table.
func (s *FileStore) MileageFile(elr string) (*mileage.MileageFile, error) {
	s.mu.RLock()
	f, ok := s.files[elr]
	s.mu.RUnlock()
	if ok {
		return f, nil
	}
	if s.db != nil {
		f, err := s.db.LoadMileageFile(elr)
		if err != nil {
			log.Printf("store: reading %s from database: %v", elr, err)
		} else if f != nil {
			s.memoize(elr, f)
			return f, nil
		}
	}
	raw, err := s.fetcher.FetchRawTable(elr)
	if err != nil {
		return nil, err
	}
	f, err = mileage.ParseTable(raw)
	if err != nil {
		return nil, err
	}
	s.memoize(elr, f)
	if s.db != nil {
		if err := s.db.SaveMileageFile(f); err != nil {
			log.Printf("store: persisting %s: %v", elr, err)
		}
	}
	return f, nil
}

func (s *FileStore) memoize(elr string, f *mileage.MileageFile) {
	s.mu.Lock()
	s.files[elr] = f
	s.mu.Unlock()
}
