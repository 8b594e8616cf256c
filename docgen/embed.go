package docgen

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
)

const (
	IndexTemplate = "index.html"
	TermTemplate  = "vocabulary.html"
)

//go:embed templates
var templates embed.FS

// Templates holds the two page layouts.
type Templates struct {
	Index *template.Template
	Term  *template.Template
}

// LoadTemplates parses the page layouts from dir, or the built-in ones when
// dir is empty.
func LoadTemplates(dir string) (*Templates, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(templates, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	index, err := parseTemplate(fsys, IndexTemplate)
	if err != nil {
		return nil, err
	}
	term, err := parseTemplate(fsys, TermTemplate)
	if err != nil {
		return nil, err
	}

	return &Templates{Index: index, Term: term}, nil
}

func parseTemplate(fsys fs.FS, name string) (*template.Template, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", name, err)
	}

	t, err := template.New(name).Option("missingkey=zero").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return t, nil
}

type IndexArguments struct {
	Name            string
	Title           string
	Content         template.HTML
	Menu            Menu
	Pkg             any
	DocumentComment template.HTML
}
