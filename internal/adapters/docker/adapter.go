// Package docker implements ports.ContainerService using the Docker SDK.
package docker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"slipway/internal/core/domain"
)

const stopTimeout = 10 * time.Second

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

// ListContainers returns the containers known to the engine with the fields
// the API and the proxy need, including the container's network address.
func (a *Adapter) ListContainers(ctx context.Context) ([]domain.Container, error) {
	containers, err := a.cli.ContainerList(ctx, types.ContainerListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	result := make([]domain.Container, 0, len(containers))
	for _, c := range containers {
		name := ""
		if len(c.Names) > 0 {
			name = c.Names[0][1:] // strip leading slash
		}

		ip := ""
		if c.NetworkSettings != nil {
			for _, n := range c.NetworkSettings.Networks {
				if n.IPAddress != "" {
					ip = n.IPAddress
					break
				}
			}
		}

		port, appPort := 0, 0
		for _, p := range c.Ports {
			if p.PublicPort != 0 && port == 0 {
				port = int(p.PublicPort)
				appPort = int(p.PrivatePort)
			}
		}

		result = append(result, domain.Container{
			ID:        c.ID[:12],
			Name:      name,
			Image:     c.Image,
			Status:    c.Status,
			State:     c.State,
			IPAddress: ip,
			Port:      port,
			AppPort:   appPort,
		})
	}
	return result, nil
}

// StartContainer pulls an image if needed and starts it with its baked-in
// command. Used for prebuilt images where the spec is already in the image.
func (a *Adapter) StartContainer(ctx context.Context, image string) (string, error) {
	reader, err := a.cli.ImagePull(ctx, image, types.ImagePullOptions{})
	if err != nil {
		return "", fmt.Errorf("pull image: %w", err)
	}
	defer reader.Close()
	_, _ = io.Copy(io.Discard, reader) // pull completes when the stream drains

	resp, err := a.cli.ContainerCreate(ctx, &container.Config{
		Image: image,
	}, nil, nil, nil, "")
	if err != nil {
		return "", fmt.Errorf("create container: %w", err)
	}

	if err := a.cli.ContainerStart(ctx, resp.ID, types.ContainerStartOptions{}); err != nil {
		return "", classifyStartError(err)
	}
	return resp.ID, nil
}

// LaunchApp starts exactly one container for a built app image. The spec's
// port is declared on the container and published on all host interfaces,
// then the launch is watched for a bounded window so an immediate crash is
// surfaced as a classified startup failure instead of a silently dead
// container.
func (a *Adapter) LaunchApp(ctx context.Context, image string, spec domain.AppSpec) (string, error) {
	spec = spec.WithDefaults()
	port := nat.Port(fmt.Sprintf("%d/tcp", spec.Port))

	resp, err := a.cli.ContainerCreate(ctx, &container.Config{
		Image:        image,
		ExposedPorts: nat.PortSet{port: struct{}{}},
	}, &container.HostConfig{
		PortBindings: nat.PortMap{
			port: []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: strconv.Itoa(spec.Port)}},
		},
	}, nil, nil, spec.Name)
	if err != nil {
		return "", fmt.Errorf("create container: %w", err)
	}

	if err := a.cli.ContainerStart(ctx, resp.ID, types.ContainerStartOptions{}); err != nil {
		return "", classifyStartError(err)
	}

	slog.Info("container started", "app", spec.Name, "container", resp.ID[:12], "port", spec.Port)

	if err := a.waitStartup(ctx, resp.ID); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// StopContainer stops a running container within the stop timeout.
func (a *Adapter) StopContainer(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, stopTimeout+5*time.Second)
	defer cancel()
	secs := int(stopTimeout.Seconds())
	if err := a.cli.ContainerStop(ctx, id, container.StopOptions{Timeout: &secs}); err != nil {
		return fmt.Errorf("stop container: %w", err)
	}
	return nil
}

// GetContainerLogs returns the container's combined output stream.
func (a *Adapter) GetContainerLogs(ctx context.Context, id string) (io.ReadCloser, error) {
	return a.cli.ContainerLogs(ctx, id, types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
	})
}
