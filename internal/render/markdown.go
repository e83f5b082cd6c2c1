package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/registry"
	"github.com/dshills/healthmetrics/internal/schema"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("report").Parse(`# Metric Registry Report

**Verdict:** {{ .Summary.Verdict }}
**Score:** {{ .Summary.Score }}/100
**Critical:** {{ .Summary.CriticalCount }} | **Warn:** {{ .Summary.WarnCount }} | **Info:** {{ .Summary.InfoCount }}
> Note: counts reflect all findings; --severity-threshold may hide some from this output.
{{ if .Input.Sources }}
## Sources
{{ range .Input.Sources }}
- {{ .Path }} ({{ .Hash }})
{{- end }}
{{ end }}{{ if .Violations }}
---

## Violations
{{ range .Violations }}
### {{ .ID }} · {{ .Severity }} · {{ .Rule }}
` + "`{{ .Path }}`" + `{{ with .MetricID }} · metric ` + "`{{ . }}`" + `{{ end }}

{{ .Message }}
{{ end }}{{ end }}
---
*Categories: {{ .Meta.Categories }} | Data types: {{ .Meta.DataTypes }} | Metrics: {{ .Meta.Metrics }}*
`))

func (r *markdownRenderer) Render(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}

type markdownExporter struct{}

type mdRow struct {
	Kind   metric.Kind
	Path   string
	ID     metric.ID
	Type   metric.Type
	Labels metric.Labels
}

type mdDataType struct {
	*metric.DataTypeConfig
	Policy string
	Rows   []mdRow
}

var mdExportTemplate = template.Must(template.New("export").Funcs(template.FuncMap{
	"cell": cell,
}).Parse(`# Metric Registry
{{ range . }}
## {{ .CategoryID }} / {{ .DataTypeID }}

**{{ .FullDisplayName }}** · map policy: {{ .Policy }}
{{ with .Definition.Text }}
{{ . }}
{{ end }}
| Kind | Field | Metric | Type | Chart title | Short label |
|---|---|---|---|---|---|
{{ range .Rows -}}
| {{ .Kind }} | {{ cell .Path }} | ` + "`{{ .ID }}`" + ` | {{ .Type }} | {{ cell .Labels.ChartTitle }} | {{ cell .Labels.ShortLabel }} |
{{ end }}{{ end }}`))

func (e *markdownExporter) Export(r *registry.Registry) ([]byte, error) {
	var dts []mdDataType
	for _, dt := range r.DataTypes() {
		item := mdDataType{DataTypeConfig: dt, Policy: dt.MapConfig.Describe()}
		for _, kind := range dt.Kinds() {
			metric.Walk(dt.Metrics[kind], func(v metric.Visit) {
				item.Rows = append(item.Rows, mdRow{
					Kind:   kind,
					Path:   strings.Join(v.Path, "."),
					ID:     v.Metric.ID(),
					Type:   v.Metric.Type(),
					Labels: v.Metric.DisplayLabels(),
				})
			})
		}
		dts = append(dts, item)
	}

	var buf bytes.Buffer
	if err := mdExportTemplate.Execute(&buf, dts); err != nil {
		return nil, fmt.Errorf("rendering markdown export: %w", err)
	}
	return buf.Bytes(), nil
}

// cell makes s safe inside a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
