// Package menu renders navigation card menus from route configurations.
//
// CardMenuMobile is the generic primitive: it turns a class directive, a
// route list and a label into a Tree without looking at any of them beyond
// copying. PolicyCardMenuMobile forwards the policy routes to it with a
// fixed class list.
package menu

import (
	"bytes"
	"html/template"
	"io"

	"github.com/dshills/healthmetrics/internal/routes"
)

// Props are the inputs of CardMenuMobile.
type Props struct {
	ClassName    string
	RouteConfigs []routes.Config
	Label        string
}

// Entry is one rendered navigation link.
type Entry struct {
	Label    string  `json:"label"`
	Path     string  `json:"path"`
	Children []Entry `json:"children,omitempty"`
}

// Tree is the render description of a card menu.
type Tree struct {
	ClassName string  `json:"className"`
	Label     string  `json:"label"`
	Entries   []Entry `json:"entries"`
}

// CardMenuMobile builds a menu with one entry per route, in input order.
// An empty route list yields a menu without entries.
func CardMenuMobile(p Props) Tree {
	return Tree{
		ClassName: p.ClassName,
		Label:     p.Label,
		Entries:   entries(p.RouteConfigs),
	}
}

func entries(cfgs []routes.Config) []Entry {
	out := make([]Entry, 0, len(cfgs))
	for _, c := range cfgs {
		e := Entry{Label: c.Label, Path: c.Path}
		if len(c.Children) > 0 {
			e.Children = entries(c.Children)
		}
		out = append(out, e)
	}
	return out
}

var htmlTemplate = template.Must(template.New("menu").Parse(`{{ define "entries" }}{{ range . }}
<li><a href="{{ .Path }}">{{ .Label }}</a>{{ if .Children }}<ul>{{ template "entries" .Children }}
</ul>{{ end }}</li>{{ end }}{{ end }}<nav class="{{ .ClassName }}" aria-label="{{ .Label }}">
<p>{{ .Label }}</p>
<ul>{{ template "entries" .Entries }}
</ul>
</nav>
`))

// WriteHTML writes the menu as a nav element. Labels, paths and the class
// list are escaped.
func (t Tree) WriteHTML(w io.Writer) error {
	return htmlTemplate.Execute(w, t)
}

// HTML returns the menu markup.
func (t Tree) HTML() (string, error) {
	var buf bytes.Buffer
	if err := t.WriteHTML(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
