package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Store holds the widgets of every loaded manifest in declaration order:
// files in lexical path order, widgets in file order.
type Store struct {
	widgets []Widget
	byID    map[string]int
}

// Document is the top level shape of a manifest file.
type Document struct {
	Widgets []Widget `json:"widgets" yaml:"widgets"`
}

// EncodeYAML writes widgets as a manifest document.
func EncodeYAML(w io.Writer, widgets ...Widget) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Document{Widgets: widgets}); err != nil {
		return fmt.Errorf("manifest: encode: %w", err)
	}
	return encoder.Close()
}

// LoadFS walks fsys and parses every .yaml, .yml, .json and .jsonc file as a
// manifest. Widget ids must be unique across all files. A nil fsys yields an
// empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{byID: make(map[string]int)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isManifestFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("manifest: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		for idx, widget := range doc.Widgets {
			if err := store.add(widget, path, idx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(widget Widget, source string, idx int) error {
	widget.ID = strings.TrimSpace(widget.ID)
	widget.Kind = strings.ToLower(strings.TrimSpace(widget.Kind))
	widget.Source = source
	if widget.ID == "" {
		return fmt.Errorf("manifest: file %s widget %d has an empty id", source, idx)
	}
	if widget.Kind == "" {
		return fmt.Errorf("manifest: file %s widget %q has no kind", source, widget.ID)
	}
	if prev, exists := s.byID[widget.ID]; exists {
		return fmt.Errorf("manifest: duplicate widget id %q (files %s and %s)", widget.ID, s.widgets[prev].Source, source)
	}
	s.byID[widget.ID] = len(s.widgets)
	s.widgets = append(s.widgets, widget)
	return nil
}

// Widget returns the widget declared with id.
func (s *Store) Widget(id string) (Widget, bool) {
	if s == nil {
		return Widget{}, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return Widget{}, false
	}
	return s.widgets[idx], true
}

// Widgets returns every widget in declaration order.
func (s *Store) Widgets() []Widget {
	if s == nil {
		return nil
	}
	return append([]Widget(nil), s.widgets...)
}

// Kinds returns the distinct widget kinds in first-use order.
func (s *Store) Kinds() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var kinds []string
	for _, widget := range s.widgets {
		if _, ok := seen[widget.Kind]; ok {
			continue
		}
		seen[widget.Kind] = struct{}{}
		kinds = append(kinds, widget.Kind)
	}
	return kinds
}

// Empty reports whether the store holds any widgets.
func (s *Store) Empty() bool {
	return s == nil || len(s.widgets) == 0
}

func parseDocument(data []byte, source string) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, fmt.Errorf("manifest: file %s is empty", source)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("manifest: parse %s: %w", source, err)
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("manifest: parse %s: %w", source, err)
		}
	}
	return doc, nil
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
