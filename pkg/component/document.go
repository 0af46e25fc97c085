package component

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// =============================================================================
// Document - Page Serialization
// =============================================================================

// Document is the canonical serialization format for a page. It is the shape
// exchanged with the external state store and the serve API.
//
// Components are stored as a list sorted by ID for deterministic output;
// ToMap/FromMap convert between the list form and the flat runtime Map.
type Document struct {
	Name       string   `json:"name,omitempty" bson:"name,omitempty"`
	RootID     string   `json:"rootId" bson:"rootId"`
	Components []Record `json:"components" bson:"components"`
}

// FromMap builds a Document from a flat snapshot.
// Components are sorted by ID for round-trip stability.
func FromMap(name, rootID string, m Map) Document {
	comps := make([]Record, 0, len(m))
	for _, rec := range m {
		comps = append(comps, rec)
	}
	slices.SortFunc(comps, func(a, b Record) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return Document{Name: name, RootID: rootID, Components: comps}
}

// ToMap converts the document's component list back to a flat snapshot.
// Returns an error on duplicate IDs, which indicate a corrupt document.
func (d Document) ToMap() (Map, error) {
	m := make(Map, len(d.Components))
	for _, rec := range d.Components {
		if rec.ID == "" {
			return nil, fmt.Errorf("component with empty ID")
		}
		if _, exists := m[rec.ID]; exists {
			return nil, fmt.Errorf("duplicate component ID %q", rec.ID)
		}
		m[rec.ID] = rec
	}
	return m, nil
}

// MarshalDocument converts a page document to indented JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocumentTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocumentFile writes a page document to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDocumentTo(d, f)
}

// WriteDocument writes a page document as JSON to an io.Writer.
func WriteDocument(d Document, w io.Writer) error {
	return writeDocumentTo(d, w)
}

// ReadDocumentFile reads a JSON file and returns the decoded page document.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readDocumentFrom(f)
}

// ReadDocument decodes a JSON page document from an io.Reader.
func ReadDocument(r io.Reader) (Document, error) {
	return readDocumentFrom(r)
}

func writeDocumentTo(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDocumentFrom(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	if _, err := d.ToMap(); err != nil {
		return Document{}, err
	}
	return d, nil
}
