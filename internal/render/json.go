package render

import (
	"encoding/json"

	"github.com/dshills/healthmetrics/internal/registry"
	"github.com/dshills/healthmetrics/internal/schema"
)

type jsonRenderer struct{}

func (r *jsonRenderer) Render(report *schema.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

type jsonExporter struct{}

func (e *jsonExporter) Export(r *registry.Registry) ([]byte, error) {
	out, err := json.MarshalIndent(Document(r), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
