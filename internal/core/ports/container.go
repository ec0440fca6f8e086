package ports

import (
	"context"
	"io"

	"slipway/internal/core/domain"
)

// ContainerService defines the core operations for launching and managing
// app containers. This interface allows us to switch between Docker, Podman,
// or Kubernetes without changing the business logic.
type ContainerService interface {
	ListContainers(ctx context.Context) ([]domain.Container, error)

	// LaunchApp starts exactly one container from a built image, publishing
	// the spec's port on all host interfaces, and waits a bounded time for
	// the server process to come up. A container that exits during the wait
	// is reported as a classified startup failure.
	LaunchApp(ctx context.Context, image string, spec domain.AppSpec) (string, error)

	// StartContainer pulls an existing image if needed and starts it with
	// its baked-in command. Used for prebuilt images.
	StartContainer(ctx context.Context, image string) (string, error)

	StopContainer(ctx context.Context, id string) error
	GetContainerLogs(ctx context.Context, id string) (io.ReadCloser, error)
}
