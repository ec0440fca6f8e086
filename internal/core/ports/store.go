package ports

import (
	"context"

	"slipway/internal/core/domain"
)

// DeploymentStore persists deployment records across daemon restarts.
type DeploymentStore interface {
	Save(ctx context.Context, d domain.Deployment) error
	Get(ctx context.Context, id string) (domain.Deployment, error)
	List(ctx context.Context) ([]domain.Deployment, error)
	SetStatus(ctx context.Context, id, status string) error
	SetContainer(ctx context.Context, id, containerID string) error
	Close() error
}
