package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	DefaultName           = "Micro API"
	DefaultBanner         = "[![Micro API](./assets/logo_light.svg)](https://github.com/micro-api/micro-api)"
	DefaultHighlightStyle = "github"
)

var DefaultDocumentComment = strings.Join([]string{
	"<!--",
	"This page is automatically generated from a build script.",
	"https://github.com/micro-api/micro-api",
	"-->",
}, "\n")

type Paths struct {
	Readme      string
	Vocabulary  string
	Templates   string // empty means the built-in templates
	Destination string
	Descriptor  string
}

var DefaultPaths = Paths{
	Readme:      "README.md",
	Vocabulary:  "vocabulary",
	Destination: "dist",
	Descriptor:  "package.json",
}

// Descriptor is the project metadata merged into every page as `pkg`.
type Descriptor struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`

	// Extra holds every other top-level key.
	Extra map[string]any `json:"-"`
}

type Config struct {
	Name            string
	Banner          string
	DocumentComment string
	HighlightStyle  string

	Paths   Paths
	Package Descriptor
}

type Option func(*Config)

func WithName(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.Name = name
		}
	}
}

func WithBanner(banner string) Option {
	return func(c *Config) {
		if banner != "" {
			c.Banner = banner
		}
	}
}

func WithHighlightStyle(style string) Option {
	return func(c *Config) {
		if style != "" {
			c.HighlightStyle = style
		}
	}
}

func LoadDescriptor(file string) (*Descriptor, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file, err)
	}

	d := Descriptor{}

	err = json.Unmarshal(data, &d)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	err = json.Unmarshal(data, &d.Extra)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	for _, known := range []string{"name", "version", "description", "homepage"} {
		delete(d.Extra, known)
	}

	return &d, nil
}

// Load builds the configuration for one build run from the given paths.
func Load(paths Paths, opts ...Option) (*Config, error) {
	cfg := &Config{
		Name:            DefaultName,
		Banner:          DefaultBanner,
		DocumentComment: DefaultDocumentComment,
		HighlightStyle:  DefaultHighlightStyle,
		Paths:           paths,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pkg, err := LoadDescriptor(paths.Descriptor)
	if err != nil {
		return nil, err
	}
	cfg.Package = *pkg

	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.Paths.Readme == "" {
		missing = append(missing, "readme")
	}
	if c.Paths.Vocabulary == "" {
		missing = append(missing, "vocabulary")
	}
	if c.Paths.Destination == "" {
		missing = append(missing, "destination")
	}
	if c.Paths.Descriptor == "" {
		missing = append(missing, "descriptor")
	}
	if len(missing) > 0 {
		return errors.New("missing required paths: " + strings.Join(missing, ", "))
	}
	return nil
}
