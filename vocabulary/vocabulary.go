package vocabulary

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const DescriptionField = "description"

var Extensions = []string{".yaml", ".yml"}

// DescriptionRenderer turns a raw markdown description into HTML.
type DescriptionRenderer interface {
	RenderString(src string) (string, error)
}

type Term struct {
	Name   string
	Fields map[string]any

	rendered bool
}

type Vocabulary map[string]*Term

// Names returns the term names in lexical order.
func (v Vocabulary) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Description returns the rendered description, or "" if the term has none.
func (t *Term) Description() template.HTML {
	if v, ok := t.Fields[DescriptionField].(template.HTML); ok {
		return v
	}
	return ""
}

// RenderDescription replaces the markdown description with its HTML form.
// Subsequent calls do nothing.
func (t *Term) RenderDescription(md DescriptionRenderer) error {
	if t.rendered {
		return nil
	}

	value, ok := t.Fields[DescriptionField]
	if !ok {
		t.rendered = true
		return nil
	}

	if _, ok := value.(template.HTML); ok {
		t.rendered = true
		return nil
	}

	src, ok := value.(string)
	if !ok {
		return fmt.Errorf("term %s: description must be a string, got %T", t.Name, value)
	}

	out, err := md.RenderString(src)
	if err != nil {
		return fmt.Errorf("term %s: %w", t.Name, err)
	}

	t.Fields[DescriptionField] = template.HTML(out)
	t.rendered = true
	return nil
}

func termName(filename string) (string, bool) {
	ext := filepath.Ext(filename)
	for _, known := range Extensions {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(filename, ext), true
		}
	}
	return "", false
}

func LoadTerm(file string) (*Term, error) {
	name, ok := termName(filepath.Base(file))
	if !ok {
		return nil, fmt.Errorf("%s is not a term document", file)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load term %s: %w", file, err)
	}

	fields := map[string]any{}

	err = yaml.Unmarshal(data, &fields)
	if err != nil {
		return nil, fmt.Errorf("failed to parse term %s: %w", file, err)
	}
	if fields == nil {
		fields = map[string]any{}
	}

	return &Term{Name: name, Fields: fields}, nil
}

// Load reads every term document in dir and renders its description.
// Skipped entries are logged at debug level to log, or to the default
// logger when log is nil.
func Load(dir string, md DescriptionRenderer, log *slog.Logger) (Vocabulary, error) {
	if log == nil {
		log = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	vocab := Vocabulary{}

	for _, entry := range entries {
		if entry.IsDir() {
			log.Debug("Skipping directory in vocabulary", "path", entry.Name())
			continue
		}
		if _, ok := termName(entry.Name()); !ok {
			log.Debug("Skipping non-term file in vocabulary", "path", entry.Name())
			continue
		}

		term, err := LoadTerm(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if _, dup := vocab[term.Name]; dup {
			return nil, fmt.Errorf("term %s is defined more than once in %s", term.Name, dir)
		}

		err = term.RenderDescription(md)
		if err != nil {
			return nil, err
		}

		vocab[term.Name] = term
	}

	return vocab, nil
}
