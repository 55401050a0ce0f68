package memory

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an append-only in-memory implementation of driven.DocumentStore.
// A document's ID is its index in the backing slice.
type DocumentStore struct {
	mu        sync.RWMutex
	documents []domain.Document
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

// Append stores a document and returns its sequential ID.
func (s *DocumentStore) Append(title, content, url, category string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := len(s.documents)
	s.documents = append(s.documents, domain.Document{
		ID:       id,
		Title:    title,
		Content:  content,
		URL:      url,
		Category: category,
	})
	return id
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(id int) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || id >= len(s.documents) {
		return domain.Document{}, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	return s.documents[id], nil
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// All returns a copy of every document in ID order.
func (s *DocumentStore) All() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Document, len(s.documents))
	copy(out, s.documents)
	return out
}
