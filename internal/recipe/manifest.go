// Package recipe turns an app spec into the deterministic build recipe that
// packages it: a parsed dependency manifest and a rendered Dockerfile whose
// layer ordering keeps the dependency-install layer cached until the
// manifest itself changes.
package recipe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"slipway/internal/core/domain"
)

// Requirement is one declared dependency: a package name and, when pinned,
// an exact version.
type Requirement struct {
	Name    string
	Version string // empty when the requirement is unpinned
}

func (r Requirement) String() string {
	if r.Version == "" {
		return r.Name
	}
	return r.Name + "==" + r.Version
}

// Manifest is the parsed dependency declaration. Unpinned lists the names of
// requirements declared without an exact version: installing those is not
// reproducible across time, which callers may want to warn about.
type Manifest struct {
	Requirements []Requirement
	Unpinned     []string
}

// pip package names: letters, digits, and interior ., _, - separators.
var nameRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ParseManifest reads pip-style requirement lines: one requirement per
// line, `name==version` or a bare name, with blank lines and # comments
// ignored. Anything else is a malformed manifest.
func ParseManifest(r io.Reader) (Manifest, error) {
	var m Manifest

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, version, pinned := strings.Cut(line, "==")
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if !pinned {
			// Comparison operators other than == are legal pip syntax but
			// still unpinned for our purposes: strip the specifier so only
			// the bare name faces the name check.
			if i := strings.IndexAny(name, "<>!~= "); i >= 0 {
				name = strings.TrimSpace(name[:i])
			}
		}
		if !nameRe.MatchString(name) {
			return Manifest{}, fmt.Errorf("%w: line %d: %q", domain.ErrManifestMalformed, lineNo, sc.Text())
		}
		if pinned && version == "" {
			return Manifest{}, fmt.Errorf("%w: line %d: missing version after ==", domain.ErrManifestMalformed, lineNo)
		}
		if !pinned {
			m.Unpinned = append(m.Unpinned, name)
		}
		m.Requirements = append(m.Requirements, Requirement{Name: name, Version: version})
	}
	if err := sc.Err(); err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return m, nil
}

// LoadManifest parses the named manifest inside the source dir. A missing
// file is a manifest error; this runs before any build step so that the
// build fails fast without touching the container engine.
func LoadManifest(dir, filename string) (Manifest, error) {
	f, err := os.Open(filepath.Join(dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, fmt.Errorf("%w: %s", domain.ErrManifestMissing, filename)
		}
		return Manifest{}, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return Manifest{}, err
	}
	return m, nil
}
