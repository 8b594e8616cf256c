package docgen

import "fmt"

// Stage names the step of a build that failed.
type Stage string

const (
	StageTemplates  Stage = "load templates"
	StageVocabulary Stage = "load vocabulary"
	StageReadme     Stage = "read readme"
	StageMarkdown   Stage = "render markdown"
	StageDocument   Stage = "post-process document"
	StageIndex      Stage = "render index"
	StageTerm       Stage = "render term"
	StageWrite      Stage = "write output"
)

type BuildError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *BuildError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, path string, err error) error {
	if err == nil {
		return nil
	}
	return &BuildError{Stage: stage, Path: path, Err: err}
}
