package builder

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/docker/docker/pkg/jsonmessage"

	"slipway/internal/core/domain"
	"slipway/internal/recipe"
)

var stepRe = regexp.MustCompile(`^Step (\d+)/\d+`)

// decodeBuildStream consumes the engine's JSON build progress stream. The
// engine reports progress as "Step N/M : INSTRUCTION" lines; tracking N lets
// a failure be attributed to the recipe step it happened in, so an install
// failure surfaces as a dependency-resolution error rather than a generic
// build failure.
func decodeBuildStream(r io.Reader, rec recipe.Recipe) error {
	dec := json.NewDecoder(r)
	step := 0

	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("decode build stream: %w", err)
		}

		if m := stepRe.FindStringSubmatch(msg.Stream); m != nil {
			step, _ = strconv.Atoi(m[1])
		}
		if s := strings.TrimRight(msg.Stream, "\n"); s != "" {
			slog.Debug("build", "output", s)
		}

		if msg.Error != nil {
			return classifyBuildFailure(rec.PhaseOfStep(step), msg.Error.Message)
		}
	}
}

// classifyBuildFailure maps a failed build step to the error taxonomy: a
// failure during the dependency-install phase is a dependency-resolution
// error, anything else is a plain build failure in that phase.
func classifyBuildFailure(phase recipe.Phase, msg string) error {
	if phase == recipe.PhaseDeps {
		return fmt.Errorf("%w: %s", domain.ErrDependencyResolution, msg)
	}
	if phase == 0 {
		return fmt.Errorf("image build failed: %s", msg)
	}
	return fmt.Errorf("image build failed at %s step: %s", phase, msg)
}
