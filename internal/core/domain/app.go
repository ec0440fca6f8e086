package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Defaults for the build recipe. An app's slipway.yaml may override any of
// them; the values are fixed into the image at build time and cannot be
// changed afterwards without a rebuild.
const (
	DefaultBaseImage  = "python:3.11-slim"
	DefaultWorkDir    = "/app"
	DefaultManifest   = "requirements.txt"
	DefaultPort       = 8000
	DefaultEntryPoint = "main:app"
)

// AppSpec describes how one app is packaged and launched: the base runtime,
// the in-image working directory, the dependency manifest to install from,
// the port the server binds, and the importable entry point served by it.
type AppSpec struct {
	Name       string `yaml:"name" json:"name"`
	BaseImage  string `yaml:"base_image" json:"base_image"`
	WorkDir    string `yaml:"workdir" json:"workdir"`
	Manifest   string `yaml:"manifest" json:"manifest"`
	Port       int    `yaml:"port" json:"port"`
	EntryPoint string `yaml:"entrypoint" json:"entrypoint"` // module:attribute
}

// WithDefaults returns a copy of the spec with every unset field replaced
// by its default.
func (s AppSpec) WithDefaults() AppSpec {
	if s.BaseImage == "" {
		s.BaseImage = DefaultBaseImage
	}
	if s.WorkDir == "" {
		s.WorkDir = DefaultWorkDir
	}
	if s.Manifest == "" {
		s.Manifest = DefaultManifest
	}
	if s.Port == 0 {
		s.Port = DefaultPort
	}
	if s.EntryPoint == "" {
		s.EntryPoint = DefaultEntryPoint
	}
	return s
}

// Entry points are interpolated into the image's launch command, so both
// halves must be Python identifiers (the module half may be dotted).
var (
	moduleRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
	attrRe   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Validate checks the fields that are interpolated into the recipe.
func (s AppSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("port %d out of range", s.Port)
	}
	if strings.Count(s.EntryPoint, ":") != 1 {
		return fmt.Errorf("entry point %q must be of the form module:attribute", s.EntryPoint)
	}
	module, attr, _ := strings.Cut(s.EntryPoint, ":")
	if !moduleRe.MatchString(module) || !attrRe.MatchString(attr) {
		return fmt.Errorf("entry point %q must be of the form module:attribute", s.EntryPoint)
	}
	if strings.ContainsAny(s.Manifest, "/\\") {
		return fmt.Errorf("manifest %q must be a plain filename in the source root", s.Manifest)
	}
	return nil
}

// BuildSource identifies where the app source tree comes from: a local
// directory or a git repository URL. Exactly one must be set.
type BuildSource struct {
	Dir     string `json:"dir,omitempty"`
	RepoURL string `json:"repo_url,omitempty"`
}

func (s BuildSource) Validate() error {
	if (s.Dir == "") == (s.RepoURL == "") {
		return fmt.Errorf("exactly one of source dir or repo URL must be given")
	}
	return nil
}
