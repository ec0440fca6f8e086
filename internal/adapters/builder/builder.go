// Package builder implements ports.BuilderService against the Docker Engine
// API: it materializes the app source, renders the build recipe and drives
// the image build, classifying failures by the build step they happened in.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/go-git/go-git/v5"

	"slipway/internal/core/domain"
	"slipway/internal/recipe"
)

type Adapter struct {
	cli *client.Client
}

func NewAdapter() (*Adapter, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return &Adapter{cli: cli}, nil
}

// BuildImage builds an image for the app in four ordered steps: base
// runtime, working directory, manifest copy + dependency install, source
// copy. The manifest is validated before the engine is touched, so a
// missing or malformed manifest fails the build without producing layers.
func (a *Adapter) BuildImage(ctx context.Context, src domain.BuildSource, spec domain.AppSpec, tag string) (string, error) {
	if err := src.Validate(); err != nil {
		return "", err
	}
	spec = spec.WithDefaults()
	if err := spec.Validate(); err != nil {
		return "", err
	}

	dir := src.Dir
	if src.RepoURL != "" {
		tmp, cleanup, err := cloneSource(ctx, src.RepoURL)
		if err != nil {
			return "", err
		}
		defer cleanup()
		dir = tmp
	}

	manifest, err := recipe.LoadManifest(dir, spec.Manifest)
	if err != nil {
		return "", err
	}
	if len(manifest.Unpinned) > 0 {
		// Unpinned requirements make the dependency layer irreproducible
		// across time. Warn and proceed; the manifest is the user's call.
		slog.Warn("manifest has unpinned requirements",
			"app", spec.Name,
			"requirements", strings.Join(manifest.Unpinned, ", "))
	}

	rec := recipe.Render(spec)

	buildCtx, err := archive.TarWithOptions(dir, &archive.TarOptions{
		ExcludePatterns: []string{"Dockerfile"},
	})
	if err != nil {
		return "", fmt.Errorf("create build context: %w", err)
	}
	buildCtx = injectDockerfile(buildCtx, rec.Dockerfile())

	slog.Info("building image", "app", spec.Name, "tag", tag, "base", spec.BaseImage)
	resp, err := a.cli.ImageBuild(ctx, buildCtx, types.ImageBuildOptions{
		Tags:       []string{tag},
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return "", fmt.Errorf("start image build: %w", err)
	}
	defer resp.Body.Close()

	if err := decodeBuildStream(resp.Body, rec); err != nil {
		return "", err
	}

	slog.Info("image built", "tag", tag)
	return tag, nil
}

// cloneSource shallow-clones the repo into a temp dir and returns the dir
// plus its cleanup func.
func cloneSource(ctx context.Context, repoURL string) (string, func(), error) {
	tmp, err := os.MkdirTemp("", "slipway-build-*")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tmp) }

	slog.Info("cloning source", "repo", repoURL)
	_, err = git.PlainCloneContext(ctx, tmp, false, &git.CloneOptions{
		URL:   repoURL,
		Depth: 1,
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("clone %s: %w", repoURL, err)
	}
	return tmp, cleanup, nil
}
