package recipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"slipway/internal/core/domain"
)

// SpecFile is the optional per-app spec file looked up in the source root.
const SpecFile = "slipway.yaml"

// LoadAppSpec reads slipway.yaml from the source dir, if present, and
// returns the spec with defaults applied. An absent file is not an error:
// the defaults describe the common case (a FastAPI app with a
// requirements.txt and a `main:app` entry point).
func LoadAppSpec(dir, name string) (domain.AppSpec, error) {
	spec := domain.AppSpec{Name: name}

	data, err := os.ReadFile(filepath.Join(dir, SpecFile))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return domain.AppSpec{}, fmt.Errorf("read %s: %w", SpecFile, err)
	default:
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return domain.AppSpec{}, fmt.Errorf("parse %s: %w", SpecFile, err)
		}
		if name != "" {
			spec.Name = name
		}
	}

	spec = spec.WithDefaults()
	if spec.Name == "" {
		spec.Name = filepath.Base(dir)
	}
	if err := spec.Validate(); err != nil {
		return domain.AppSpec{}, err
	}
	return spec, nil
}
