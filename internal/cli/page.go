package cli

import (
	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
	"github.com/xxld0125/low-code-ai-sub004/pkg/rules"
)

// loadedPage bundles a page document with its flat snapshot.
type loadedPage struct {
	doc  component.Document
	comp component.Map
}

// loadPage reads a page document from disk and converts it to a snapshot.
func loadPage(path string) (loadedPage, error) {
	doc, err := component.ReadDocumentFile(path)
	if err != nil {
		return loadedPage{}, err
	}
	comp, err := doc.ToMap()
	if err != nil {
		return loadedPage{}, err
	}
	return loadedPage{doc: doc, comp: comp}, nil
}

// newEngine builds a rule engine, layering a TOML rule file over the
// defaults when rulesPath is non-empty.
func newEngine(rulesPath string) (*rules.Engine, error) {
	if rulesPath == "" {
		return rules.NewEngine(nil), nil
	}
	return rules.LoadTable(rulesPath)
}
