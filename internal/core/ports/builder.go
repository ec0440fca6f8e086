package ports

import (
	"context"

	"slipway/internal/core/domain"
)

// BuilderService defines operations for building container images from
// application source.
type BuilderService interface {
	// BuildImage materializes the source (local dir or git clone), renders
	// the build recipe for the given spec and builds an image tagged tag.
	// It returns the tag of the built image or an error.
	BuildImage(ctx context.Context, src domain.BuildSource, spec domain.AppSpec, tag string) (string, error)
}
