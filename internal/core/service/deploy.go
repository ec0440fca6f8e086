// Package service orchestrates the build-and-launch flow over the ports.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"slipway/internal/core/domain"
	"slipway/internal/core/ports"
	"slipway/internal/recipe"
)

// Deployer runs the full sequence for one app: render-and-build the image,
// then launch exactly one container from it, recording progress in the
// store. The two phases are strictly ordered; a build failure never
// launches anything.
type Deployer struct {
	Builder ports.BuilderService
	Runtime ports.ContainerService
	Store   ports.DeploymentStore
}

// Deploy builds an image for the source and launches it. The returned
// deployment reflects the final state; on failure the record is kept with
// status failed so the attempt stays visible.
func (dp *Deployer) Deploy(ctx context.Context, src domain.BuildSource, name string) (domain.Deployment, error) {
	if err := src.Validate(); err != nil {
		return domain.Deployment{}, err
	}

	spec, err := resolveSpec(src, name)
	if err != nil {
		return domain.Deployment{}, err
	}

	id := uuid.NewString()[:8]
	dep := domain.Deployment{
		ID:        id,
		AppName:   spec.Name,
		Image:     fmt.Sprintf("slipway/%s:%s", spec.Name, id),
		Port:      spec.Port,
		Status:    domain.StatusBuilding,
		CreatedAt: time.Now().UTC(),
	}
	if err := dp.Store.Save(ctx, dep); err != nil {
		return domain.Deployment{}, err
	}

	if _, err := dp.Builder.BuildImage(ctx, src, spec, dep.Image); err != nil {
		_ = dp.Store.SetStatus(ctx, id, domain.StatusFailed)
		return dep, err
	}

	containerID, err := dp.Runtime.LaunchApp(ctx, dep.Image, spec)
	if err != nil {
		_ = dp.Store.SetStatus(ctx, id, domain.StatusFailed)
		return dep, err
	}

	if err := dp.Store.SetContainer(ctx, id, containerID); err != nil {
		return dep, err
	}
	if err := dp.Store.SetStatus(ctx, id, domain.StatusRunning); err != nil {
		return dep, err
	}

	dep.ContainerID = containerID
	dep.Status = domain.StatusRunning
	return dep, nil
}

// Stop stops a deployment's container and marks the record stopped.
func (dp *Deployer) Stop(ctx context.Context, id string) error {
	dep, err := dp.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if dep.ContainerID != "" {
		if err := dp.Runtime.StopContainer(ctx, dep.ContainerID); err != nil {
			return err
		}
	}
	return dp.Store.SetStatus(ctx, id, domain.StatusStopped)
}

// resolveSpec loads the app spec for a local source tree. Repo sources are
// cloned by the builder, so their spec file is not readable here; they get
// the defaults and must carry a name.
func resolveSpec(src domain.BuildSource, name string) (domain.AppSpec, error) {
	if src.Dir != "" {
		return recipe.LoadAppSpec(src.Dir, name)
	}
	if name == "" {
		return domain.AppSpec{}, fmt.Errorf("app name is required for repo sources")
	}
	spec := domain.AppSpec{Name: name}.WithDefaults()
	if err := spec.Validate(); err != nil {
		return domain.AppSpec{}, err
	}
	return spec, nil
}
