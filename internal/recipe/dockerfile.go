package recipe

import (
	"fmt"
	"strings"

	"slipway/internal/core/domain"
)

// Phase identifies which of the ordered build steps an instruction belongs
// to. The builder uses it to classify a failure by the step it happened in.
type Phase int

const (
	PhaseBase Phase = iota + 1 // base runtime selection
	PhaseWorkdir
	PhaseDeps   // manifest copy + dependency install
	PhaseSource // application source copy
	PhaseMeta   // advisory port declaration and launch command
)

func (p Phase) String() string {
	switch p {
	case PhaseBase:
		return "base"
	case PhaseWorkdir:
		return "workdir"
	case PhaseDeps:
		return "dependencies"
	case PhaseSource:
		return "source"
	case PhaseMeta:
		return "metadata"
	}
	return "unknown"
}

// Instruction is one rendered Dockerfile instruction: one immutable image
// layer, applied in strict declaration order.
type Instruction struct {
	Line  string
	Phase Phase
}

// Recipe is the rendered build recipe for one app.
type Recipe struct {
	Instructions []Instruction
}

// Render produces the recipe for a spec. The ordering is the point: the
// manifest is copied and installed on its own layer before the rest of the
// source, so an incremental rebuild that only touches application source
// reuses the cached dependency layer.
//
// Rendering is deterministic: identical specs yield byte-identical output.
func Render(spec domain.AppSpec) Recipe {
	spec = spec.WithDefaults()

	addr := launchCommand(spec)
	ins := []Instruction{
		{Line: "FROM " + spec.BaseImage, Phase: PhaseBase},
		{Line: "WORKDIR " + spec.WorkDir, Phase: PhaseWorkdir},
		{Line: fmt.Sprintf("COPY %s ./", spec.Manifest), Phase: PhaseDeps},
		{Line: fmt.Sprintf("RUN pip install --no-cache-dir -r %s", spec.Manifest), Phase: PhaseDeps},
		{Line: "COPY . .", Phase: PhaseSource},
		{Line: fmt.Sprintf("EXPOSE %d", spec.Port), Phase: PhaseMeta},
		{Line: "CMD " + addr, Phase: PhaseMeta},
	}
	return Recipe{Instructions: ins}
}

// launchCommand renders the fixed exec-form command: the server binds all
// interfaces on the spec's port and serves the named entry point.
func launchCommand(spec domain.AppSpec) string {
	args := []string{
		"uvicorn", spec.EntryPoint,
		"--host", "0.0.0.0",
		"--port", fmt.Sprintf("%d", spec.Port),
	}
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = `"` + a + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Dockerfile returns the recipe as Dockerfile text.
func (r Recipe) Dockerfile() []byte {
	var b strings.Builder
	for _, in := range r.Instructions {
		b.WriteString(in.Line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// PhaseOfStep maps a 1-based build step number, as reported by the engine's
// "Step N/M" progress lines, to its phase. Steps outside the recipe report
// an unknown phase.
func (r Recipe) PhaseOfStep(n int) Phase {
	if n < 1 || n > len(r.Instructions) {
		return 0
	}
	return r.Instructions[n-1].Phase
}
