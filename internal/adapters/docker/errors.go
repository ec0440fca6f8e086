package docker

import (
	"fmt"
	"strings"

	"slipway/internal/core/domain"
)

// entryPointMarkers are the signatures uvicorn and the Python import
// machinery print when the named application object cannot be loaded.
var entryPointMarkers = []string{
	"error loading asgi app",
	"modulenotfounderror",
	"attribute \"app\" not found",
	"attributeerror",
}

// classifyStartError maps a ContainerStart engine error to the taxonomy:
// the engine refuses to publish a host port that is already allocated.
func classifyStartError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "port is already allocated") || strings.Contains(msg, "address already in use") {
		return fmt.Errorf("%w: %v", domain.ErrPortInUse, err)
	}
	return fmt.Errorf("start container: %w", err)
}

// classifyStartupFailure maps an immediate container exit to the taxonomy
// using the process's own output: an unloadable entry point and an in-use
// port each print recognizable diagnostics.
func classifyStartupFailure(exitCode int, logs string) error {
	lower := strings.ToLower(logs)

	for _, marker := range entryPointMarkers {
		if strings.Contains(lower, marker) {
			return fmt.Errorf("%w: %s", domain.ErrEntryPointNotFound, firstLineMatching(logs, marker))
		}
	}
	if strings.Contains(lower, "address already in use") {
		return fmt.Errorf("%w: %s", domain.ErrPortInUse, firstLineMatching(logs, "address already in use"))
	}
	return fmt.Errorf("app process exited with status %d during startup", exitCode)
}

// firstLineMatching returns the first log line containing the marker, for a
// diagnostic that quotes the process rather than the whole log tail.
func firstLineMatching(logs, marker string) string {
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(strings.ToLower(line), marker) {
			return strings.TrimSpace(line)
		}
	}
	return strings.TrimSpace(logs)
}
