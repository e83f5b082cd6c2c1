// Package catalog holds the categories compiled into the binary and loads
// additional categories from catalog files.
package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dshills/healthmetrics/internal/metric"
	"github.com/dshills/healthmetrics/internal/schema"
)

// Document is the top-level layout of a catalog file.
type Document struct {
	Categories []metric.CategoryRecord `json:"categories" yaml:"categories" toml:"categories"`
}

// File holds a loaded catalog file with derived metadata.
type File struct {
	Path       string
	Hash       string // "sha256:<hex>"
	Categories []metric.Category
	// Violations are shape problems found while converting the file's
	// records; they are not numbered.
	Violations []schema.Violation
}

// Load reads a catalog file from disk, computes its hash and converts its
// records. The format follows the extension: .yaml/.yml, .json or .toml.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	doc, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding catalog file %s: %w", path, err)
	}

	sum := sha256.Sum256(data)
	cats, violations := FromRecords(doc.Categories)

	return &File{
		Path:       path,
		Hash:       fmt.Sprintf("sha256:%x", sum),
		Categories: cats,
		Violations: violations,
	}, nil
}

// LoadAll loads each path in order.
func LoadAll(paths []string) ([]*File, error) {
	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, err := Load(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Decode parses catalog data in the format named by ext.
func Decode(data []byte, ext string) (*Document, error) {
	var doc Document
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("YAML parse failed: %w", err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("JSON parse failed: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("TOML parse failed: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("TOML parse failed: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported catalog extension %q: supported are .yaml, .yml, .json, .toml", ext)
	}
	return &doc, nil
}
