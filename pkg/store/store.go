// Package store persists page documents for the CLI and serve surfaces.
//
// The structural core never persists anything itself; it consumes and
// returns flat component snapshots. This package is the state-store
// collaborator those snapshots flow through, with implementations for
// different backends:
//   - memory: in-process storage for development and tests
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for durable documents
//
// All implementations treat documents opaquely; validation stays in the
// rules and hierarchy packages.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// ErrNotFound is returned by Get and Delete when no document exists under
// the requested name.
var ErrNotFound = errors.New("page not found")

// Store persists page documents by name.
type Store interface {
	// Get returns the document stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) (component.Document, error)

	// Put stores the document under its Name, replacing any previous version.
	Put(ctx context.Context, doc component.Document) error

	// Delete removes the document, returning ErrNotFound if absent.
	Delete(ctx context.Context, name string) error

	// List returns the stored document names in sorted order.
	List(ctx context.Context) ([]string, error)
}

// Memory is an in-process Store for development and tests.
// It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]component.Document
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]component.Document)}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, name string) (component.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[name]
	if !ok {
		return component.Document{}, ErrNotFound
	}
	return doc, nil
}

// Put implements Store.
func (m *Memory) Put(_ context.Context, doc component.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.Name] = doc
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[name]; !ok {
		return ErrNotFound
	}
	delete(m.docs, name)
	return nil
}

// List implements Store.
func (m *Memory) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
