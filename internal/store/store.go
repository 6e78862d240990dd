// Package store persists the whole dashboard state as a single JSON
// document. Every mutation is a full read-modify-rewrite of the file,
// serialized through one mutex so concurrent writers cannot lose updates.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

var (
	// ErrCorrupt means the document on disk is not valid JSON.
	ErrCorrupt = errors.New("document store: corrupt document")
	// ErrWrite means the document could not be written back.
	ErrWrite = errors.New("document store: write failed")
)

// DocumentStore is a JSON-file backed document store. A missing file reads
// as an empty document; the file is created on first save.
type DocumentStore struct {
	path string
	mu   sync.Mutex
}

func NewDocumentStore(path string) *DocumentStore {
	return &DocumentStore{path: path}
}

func (s *DocumentStore) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(data) == 0 {
		return NewDocument(), nil
	}

	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return doc, nil
}

func (s *DocumentStore) save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Load returns a private snapshot of the current document.
func (s *DocumentStore) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// View runs fn against a read-only snapshot.
func (s *DocumentStore) View(fn func(*Document) error) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update runs fn inside the load-mutate-save critical section and rewrites
// the whole document if fn succeeds. Returning an error from fn discards
// the mutation.
func (s *DocumentStore) Update(fn func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// Ping verifies the document is readable, for health checks.
func (s *DocumentStore) Ping() error {
	_, err := s.Load()
	return err
}
