// Package templates renders loaded blog content through the two required
// page templates. The mapping from domain records to template models is
// shared by packed and served output; only the link literals differ.
package templates

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
)

const (
	// MainTemplate renders the blog front page.
	MainTemplate = "index.html"
	// PostTemplate renders a single post page.
	PostTemplate = "post.html"
)

// Template-set construction errors, one per required template.
var (
	ErrNoMainTemplate = errors.New("no main template file found")
	ErrNoPostTemplate = errors.New("no posts template file found")
)

// Set holds the parsed blog templates. It is immutable after Load and safe
// for concurrent rendering.
type Set struct {
	templates *template.Template
}

// Load parses every .html template found in dir and verifies that the two
// required ones are present.
func Load(dir string) (*Set, error) {
	tpl, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("loading templates from %s: %w", dir, err)
	}
	if tpl.Lookup(MainTemplate) == nil {
		return nil, ErrNoMainTemplate
	}
	if tpl.Lookup(PostTemplate) == nil {
		return nil, ErrNoPostTemplate
	}
	return &Set{templates: tpl}, nil
}

// RenderMain renders the front page for model.
func (s *Set) RenderMain(model MainModel) (string, error) {
	return s.render(MainTemplate, model)
}

// RenderPost renders a standalone post page for model.
func (s *Set) RenderPost(model PostModel) (string, error) {
	return s.render(PostTemplate, model)
}

func (s *Set) render(name string, model interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, model); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}
