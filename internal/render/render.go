// Package render formats check reports and registry exports.
package render

import (
	"fmt"

	"github.com/dshills/healthmetrics/internal/registry"
	"github.com/dshills/healthmetrics/internal/schema"
)

// Renderer formats a Report into bytes for output.
type Renderer interface {
	Render(report *schema.Report) ([]byte, error)
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json" (default), "md".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json", "":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are json, md", format)
	}
}

// Exporter writes the contents of a registry.
type Exporter interface {
	Export(r *registry.Registry) ([]byte, error)
}

// NewExporter returns an Exporter for the given format string.
// Supported formats: "json" (default), "yaml", "md".
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json", "":
		return &jsonExporter{}, nil
	case "yaml", "yml":
		return &yamlExporter{}, nil
	case "md":
		return &markdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q: supported formats are json, yaml, md", format)
	}
}
