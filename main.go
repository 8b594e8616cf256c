package main

import (
	"errors"
	"io"
	"os"

	"microdoc/backends"
	"microdoc/docgen"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      "microdoc",
		Usage:     "Build the API documentation site",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     backends.StandardFlags,
		Action:    docgen.BuildAction,
	}

	for _, b := range backends.Backends {
		app.Commands = append(app.Commands, b.GenerateCommand())
	}
	app.Commands = append(app.Commands, docgen.TermsCommand)

	return app
}

// report writes the failure and every wrapped cause to w.
func report(w io.Writer, err error) {
	red := color.New(color.FgRed)

	red.Fprintf(w, "error: %v\n", err)

	var be *docgen.BuildError
	if errors.As(err, &be) {
		red.Fprintf(w, "  stage: %s\n", be.Stage)
		if be.Path != "" {
			red.Fprintf(w, "  path:  %s\n", be.Path)
		}
	}

	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		red.Fprintf(w, "  caused by: %T: %v\n", cause, cause)
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr).Run(args)
	if err != nil {
		report(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
