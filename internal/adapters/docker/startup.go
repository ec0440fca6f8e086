package docker

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/pkg/stdcopy"
)

const (
	startupWindow = 3 * time.Second
	startupPoll   = 250 * time.Millisecond
)

// waitStartup watches a freshly started container for the startup window.
// A container still running when the window closes is considered up. One
// that exited is a startup failure: its logs are read and the failure is
// classified (missing entry point, port bind, or a plain crash).
func (a *Adapter) waitStartup(ctx context.Context, id string) error {
	deadline := time.After(startupWindow)
	tick := time.NewTicker(startupPoll)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return nil
		case <-tick.C:
			info, err := a.cli.ContainerInspect(ctx, id)
			if err != nil {
				return fmt.Errorf("inspect container: %w", err)
			}
			if info.State != nil && !info.State.Running {
				return a.startupFailure(ctx, id, info.State.ExitCode)
			}
		}
	}
}

func (a *Adapter) startupFailure(ctx context.Context, id string, exitCode int) error {
	logs := a.tailLogs(ctx, id)
	return classifyStartupFailure(exitCode, logs)
}

// tailLogs fetches the last lines of a container's output. The stream is
// multiplexed for non-TTY containers, so it is demuxed before matching.
func (a *Adapter) tailLogs(ctx context.Context, id string) string {
	rc, err := a.cli.ContainerLogs(ctx, id, types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       "50",
	})
	if err != nil {
		return ""
	}
	defer rc.Close()

	var out bytes.Buffer
	_, _ = stdcopy.StdCopy(&out, &out, rc)
	return out.String()
}
