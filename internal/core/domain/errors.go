package domain

import "errors"

// Failure classes surfaced by the builder and the launcher. All of them are
// fatal: the caller reports them and exits non-zero, nothing is retried.
var (
	// ErrManifestMissing: the dependency manifest does not exist in the
	// source tree. Raised before any build step runs.
	ErrManifestMissing = errors.New("dependency manifest not found")

	// ErrManifestMalformed: the manifest exists but a line cannot be parsed.
	ErrManifestMalformed = errors.New("dependency manifest is malformed")

	// ErrDependencyResolution: the dependency-install build step failed
	// (unreachable package index, unresolvable version).
	ErrDependencyResolution = errors.New("dependency resolution failed")

	// ErrEntryPointNotFound: the launched server could not import the named
	// application object; the container exited immediately.
	ErrEntryPointNotFound = errors.New("application entry point not found")

	// ErrPortInUse: the port is already bound, either on the host at publish
	// time or inside the container at server startup.
	ErrPortInUse = errors.New("port already in use")

	// ErrDeploymentNotFound: no deployment record with the requested id.
	ErrDeploymentNotFound = errors.New("deployment not found")
)
