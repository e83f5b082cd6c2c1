package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dshills/healthmetrics/internal/catalog"
	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/registry"
)

// Document converts the registry into the catalog file layout, so an export
// can be loaded back as a catalog.
func Document(r *registry.Registry) *catalog.Document {
	cats := r.Categories()
	doc := &catalog.Document{Categories: make([]metric.CategoryRecord, 0, len(cats))}
	for i := range cats {
		doc.Categories = append(doc.Categories, cats[i].Record())
	}
	return doc
}

type yamlExporter struct{}

func (e *yamlExporter) Export(r *registry.Registry) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Document(r)); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}
