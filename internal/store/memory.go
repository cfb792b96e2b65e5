package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps serialized documents in process memory. It backs the
// server when no external store is configured, and the test suites. Values
// are held as JSON so the round-trip matches the external stores.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, email string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc Document
	if raw, ok := s.data[ProductsKey(email)]; ok {
		if err := json.Unmarshal(raw, &doc.Products); err != nil {
			return Document{}, err
		}
	}
	if raw, ok := s.data[SalesKey(email)]; ok {
		if err := json.Unmarshal(raw, &doc.Sales); err != nil {
			return Document{}, err
		}
	}
	return doc, nil
}

func (s *MemoryStore) Save(_ context.Context, email string, doc Document) error {
	products, err := json.Marshal(doc.Products)
	if err != nil {
		return err
	}
	sales, err := json.Marshal(doc.Sales)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[ProductsKey(email)] = products
	s.data[SalesKey(email)] = sales
	return nil
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
}
