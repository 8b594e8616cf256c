package backends

import (
	"log/slog"

	"microdoc/project"

	"github.com/urfave/cli/v2"
)

type Backend interface {
	GenerateCommand() *cli.Command
}

var StandardFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "readme",
		Usage:   "The markdown document rendered as the index page",
		Value:   project.DefaultPaths.Readme,
		Aliases: []string{"r"},
	},
	&cli.StringFlag{
		Name:  "vocabulary",
		Usage: "The directory of YAML term documents",
		Value: project.DefaultPaths.Vocabulary,
	},
	&cli.StringFlag{
		Name:        "templates",
		Usage:       "The directory holding index.html and vocabulary.html",
		DefaultText: "built-in",
		Aliases:     []string{"t"},
	},
	&cli.StringFlag{
		Name:    "outdir",
		Usage:   "The directory to output generated pages to",
		Value:   project.DefaultPaths.Destination,
		Aliases: []string{"o"},
	},
	&cli.StringFlag{
		Name:    "package",
		Usage:   "The project descriptor supplying name and version",
		Value:   project.DefaultPaths.Descriptor,
		Aliases: []string{"p"},
	},
	&cli.StringFlag{
		Name:  "name",
		Usage: "The site name shown on every page",
		Value: project.DefaultName,
	},
	&cli.StringFlag{
		Name:  "banner",
		Usage: "The markdown shown in the index page header",
		Value: project.DefaultBanner,
	},
	&cli.StringFlag{
		Name:  "highlight-style",
		Usage: "The chroma style used for code blocks",
		Value: project.DefaultHighlightStyle,
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable debug logging",
		Aliases: []string{"v"},
	},
}

var Backends = []Backend{}

func RegisterBackend(b Backend) {
	Backends = append(Backends, b)
}

// ConfigFrom builds the build configuration from the standard flags.
func ConfigFrom(cCtx *cli.Context) (*project.Config, error) {
	paths := project.Paths{
		Readme:      cCtx.String("readme"),
		Vocabulary:  cCtx.String("vocabulary"),
		Templates:   cCtx.String("templates"),
		Destination: cCtx.String("outdir"),
		Descriptor:  cCtx.String("package"),
	}

	return project.Load(paths,
		project.WithName(cCtx.String("name")),
		project.WithBanner(cCtx.String("banner")),
		project.WithHighlightStyle(cCtx.String("highlight-style")),
	)
}

// LoggerFrom returns a text logger on the app's error writer.
func LoggerFrom(cCtx *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if cCtx.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cCtx.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}
