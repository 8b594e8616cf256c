package docgen

import (
	"bytes"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"microdoc/backends"
	"microdoc/markdown"
	"microdoc/project"
	"microdoc/vocabulary"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
)

const htmlExtension = ".html"

// Page is one rendered output file, named relative to the output directory.
type Page struct {
	Name    string
	Content string
}

type Result struct {
	Files []string
}

type Generator struct {
	cfg       *project.Config
	md        *markdown.Renderer
	templates *Templates
	log       *slog.Logger
}

func NewGenerator(cfg *project.Config, log *slog.Logger) (*Generator, error) {
	if log == nil {
		log = slog.Default()
	}

	t, err := LoadTemplates(cfg.Paths.Templates)
	if err != nil {
		return nil, stageError(StageTemplates, cfg.Paths.Templates, err)
	}

	return &Generator{
		cfg:       cfg,
		md:        markdown.New(markdown.WithHighlightStyle(cfg.HighlightStyle)),
		templates: t,
		log:       log,
	}, nil
}

func (g *Generator) LoadVocabulary() (vocabulary.Vocabulary, error) {
	vocab, err := vocabulary.Load(g.cfg.Paths.Vocabulary, g.md, g.log)
	if err != nil {
		return nil, stageError(StageVocabulary, g.cfg.Paths.Vocabulary, err)
	}

	g.log.Info("Loaded vocabulary", "path", g.cfg.Paths.Vocabulary, "terms", len(vocab))
	return vocab, nil
}

func (g *Generator) RenderIndex() (*Page, error) {
	readme := g.cfg.Paths.Readme

	src, err := os.ReadFile(readme)
	if err != nil {
		return nil, stageError(StageReadme, readme, err)
	}

	fragment, err := g.md.Render(markdown.ReplaceFirstLine(src, g.cfg.Banner))
	if err != nil {
		return nil, stageError(StageMarkdown, readme, err)
	}

	content, menu, err := PostProcess(fragment)
	if err != nil {
		return nil, stageError(StageDocument, readme, err)
	}

	g.log.Debug("Post-processed readme", "path", readme, "headings", len(menu))

	args := IndexArguments{
		Name:            g.cfg.Name,
		Title:           g.cfg.Name,
		Content:         template.HTML(content),
		Menu:            menu,
		Pkg:             g.cfg.Package,
		DocumentComment: template.HTML(g.cfg.DocumentComment),
	}

	out, err := g.execute(g.templates.Index, args)
	if err != nil {
		return nil, stageError(StageIndex, IndexTemplate, err)
	}

	return &Page{Name: "index" + htmlExtension, Content: out}, nil
}

func (g *Generator) RenderTerm(term *vocabulary.Term) (*Page, error) {
	err := term.RenderDescription(g.md)
	if err != nil {
		return nil, stageError(StageTerm, term.Name, err)
	}

	fields := map[string]any{}
	for k, v := range term.Fields {
		if k != vocabulary.DescriptionField {
			fields[k] = v
		}
	}

	args := map[string]any{
		"term":            term.Name,
		"title":           term.Name,
		"name":            g.cfg.Name,
		"pkg":             g.cfg.Package,
		"documentComment": template.HTML(g.cfg.DocumentComment),
		"fields":          fields,
	}
	// Term fields take precedence over the defaults above.
	for k, v := range term.Fields {
		args[k] = v
	}
	if _, ok := term.Fields[vocabulary.DescriptionField]; ok {
		args[vocabulary.DescriptionField] = term.Description()
	}

	out, err := g.execute(g.templates.Term, args)
	if err != nil {
		return nil, stageError(StageTerm, term.Name, err)
	}

	return &Page{Name: term.Name + htmlExtension, Content: out}, nil
}

func (g *Generator) execute(t *template.Template, args any) (string, error) {
	var out bytes.Buffer

	err := t.Execute(&out, args)
	if err != nil {
		return "", err
	}

	return Minify(out.String())
}

// Build renders every page before writing any of them.
func (g *Generator) Build() (*Result, error) {
	vocab, err := g.LoadVocabulary()
	if err != nil {
		return nil, err
	}

	index, err := g.RenderIndex()
	if err != nil {
		return nil, err
	}

	pages := []*Page{index}

	for _, name := range vocab.Names() {
		page, err := g.RenderTerm(vocab[name])
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	outdir := g.cfg.Paths.Destination

	err = os.MkdirAll(outdir, 0755)
	if err != nil {
		return nil, stageError(StageWrite, outdir, err)
	}

	result := &Result{}

	for _, page := range pages {
		file := filepath.Join(outdir, page.Name)

		err = os.WriteFile(file, []byte(page.Content), 0644)
		if err != nil {
			return result, stageError(StageWrite, file, err)
		}

		result.Files = append(result.Files, file)
		g.log.Debug("Wrote page", "path", file)
	}

	g.log.Info("Build complete", "output", outdir, "files", len(result.Files))
	return result, nil
}

type HTMLBackend struct{}

var _ backends.Backend = HTMLBackend{}

func init() {
	backends.RegisterBackend(HTMLBackend{})
}

func (HTMLBackend) GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:   "build",
		Usage:  "Render the README and vocabulary into HTML pages",
		Flags:  backends.StandardFlags,
		Action: BuildAction,
	}
}

func BuildAction(cCtx *cli.Context) error {
	log := backends.LoggerFrom(cCtx)
	slog.SetDefault(log)

	cfg, err := backends.ConfigFrom(cCtx)
	if err != nil {
		return err
	}

	g, err := NewGenerator(cfg, log)
	if err != nil {
		return err
	}

	_, err = g.Build()
	return err
}

var TermsCommand = &cli.Command{
	Name:  "terms",
	Usage: "Load the vocabulary and print it without writing any pages",
	Flags: backends.StandardFlags,
	Action: func(cCtx *cli.Context) error {
		log := backends.LoggerFrom(cCtx)
		slog.SetDefault(log)

		cfg, err := backends.ConfigFrom(cCtx)
		if err != nil {
			return err
		}

		g, err := NewGenerator(cfg, log)
		if err != nil {
			return err
		}

		vocab, err := g.LoadVocabulary()
		if err != nil {
			return err
		}

		dump := make(map[string]map[string]any, len(vocab))
		for name, term := range vocab {
			dump[name] = term.Fields
		}

		repr.New(cCtx.App.Writer, repr.Indent("  ")).Println(dump)
		return nil
	},
}
