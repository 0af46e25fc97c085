package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// File is a directory-backed Store. Each page is written as one JSON document
// named <name>.json, so pages can be inspected and edited with ordinary
// tools and checked into version control.
type File struct {
	dir string
}

// NewFile creates a file store rooted at dir, creating the directory if
// needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid page name %q", name)
	}
	return filepath.Join(f.dir, name+".json"), nil
}

// Get implements Store.
func (f *File) Get(_ context.Context, name string) (component.Document, error) {
	path, err := f.path(name)
	if err != nil {
		return component.Document{}, err
	}
	doc, err := component.ReadDocumentFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return component.Document{}, ErrNotFound
	}
	return doc, err
}

// Put implements Store.
func (f *File) Put(_ context.Context, doc component.Document) error {
	path, err := f.path(doc.Name)
	if err != nil {
		return err
	}
	return component.WriteDocumentFile(doc, path)
}

// Delete implements Store.
func (f *File) Delete(_ context.Context, name string) error {
	path, err := f.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

// List implements Store.
func (f *File) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("read store dir %s: %w", f.dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(names)
	return names, nil
}
