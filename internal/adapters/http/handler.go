// Package http exposes the deploy, container and proxy surface over Fiber.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"slipway/internal/core/domain"
	"slipway/internal/core/ports"
	"slipway/internal/core/service"
)

type AppHandler struct {
	deployer *service.Deployer
	runtime  ports.ContainerService
	store    ports.DeploymentStore
}

func NewAppHandler(deployer *service.Deployer, runtime ports.ContainerService, store ports.DeploymentStore) *AppHandler {
	return &AppHandler{deployer: deployer, runtime: runtime, store: store}
}

type DeployRequest struct {
	Name      string `json:"name"`
	SourceDir string `json:"source_dir"`
	RepoURL   string `json:"repo_url"`
}

func (h *AppHandler) DeployApp(c *fiber.Ctx) error {
	var req DeployRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	src := domain.BuildSource{Dir: req.SourceDir, RepoURL: req.RepoURL}
	dep, err := h.deployer.Deploy(c.Context(), src, req.Name)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error":      err.Error(),
			"deployment": dep.ID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dep)
}

func (h *AppHandler) ListApps(c *fiber.Ctx) error {
	deps, err := h.store.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if deps == nil {
		deps = []domain.Deployment{}
	}
	return c.JSON(deps)
}

func (h *AppHandler) StopApp(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Deployment ID is required",
		})
	}

	if err := h.deployer.Stop(c.Context(), id); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *AppHandler) GetAppLogs(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Deployment ID is required",
		})
	}

	dep, err := h.store.Get(c.Context(), id)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if dep.ContainerID == "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "deployment has no container",
		})
	}

	logs, err := h.runtime.GetContainerLogs(c.Context(), dep.ContainerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "text/plain")
	return c.SendStream(logs)
}

func (h *AppHandler) ListContainers(c *fiber.Ctx) error {
	containers, err := h.runtime.ListContainers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if containers == nil {
		containers = []domain.Container{}
	}
	return c.JSON(containers)
}

// statusFor maps the failure taxonomy to HTTP statuses: caller mistakes in
// the source tree are 4xx, port contention is a conflict, everything else
// is a server error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrManifestMissing),
		errors.Is(err, domain.ErrManifestMalformed):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrEntryPointNotFound):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPortInUse):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrDeploymentNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
