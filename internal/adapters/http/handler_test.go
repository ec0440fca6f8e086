package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slipway/internal/core/domain"
	"slipway/internal/core/service"
)

type stubBuilder struct {
	err error
}

func (s *stubBuilder) BuildImage(_ context.Context, _ domain.BuildSource, _ domain.AppSpec, tag string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return tag, nil
}

type stubRuntime struct {
	launchErr  error
	containers []domain.Container
	logs       string
}

func (s *stubRuntime) ListContainers(context.Context) ([]domain.Container, error) {
	return s.containers, nil
}

func (s *stubRuntime) LaunchApp(_ context.Context, _ string, _ domain.AppSpec) (string, error) {
	if s.launchErr != nil {
		return "", s.launchErr
	}
	return "container-1", nil
}

func (s *stubRuntime) StartContainer(context.Context, string) (string, error) { return "", nil }
func (s *stubRuntime) StopContainer(context.Context, string) error            { return nil }

func (s *stubRuntime) GetContainerLogs(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.logs)), nil
}

type memStore struct {
	deployments map[string]domain.Deployment
}

func (m *memStore) Save(_ context.Context, d domain.Deployment) error {
	m.deployments[d.ID] = d
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (domain.Deployment, error) {
	d, ok := m.deployments[id]
	if !ok {
		return domain.Deployment{}, fmt.Errorf("%w: %s", domain.ErrDeploymentNotFound, id)
	}
	return d, nil
}

func (m *memStore) List(context.Context) ([]domain.Deployment, error) {
	out := make([]domain.Deployment, 0, len(m.deployments))
	for _, d := range m.deployments {
		out = append(out, d)
	}
	return out, nil
}

func (m *memStore) SetStatus(_ context.Context, id, status string) error {
	d, ok := m.deployments[id]
	if !ok {
		return domain.ErrDeploymentNotFound
	}
	d.Status = status
	m.deployments[id] = d
	return nil
}

func (m *memStore) SetContainer(_ context.Context, id, containerID string) error {
	d, ok := m.deployments[id]
	if !ok {
		return domain.ErrDeploymentNotFound
	}
	d.ContainerID = containerID
	m.deployments[id] = d
	return nil
}

func (m *memStore) Close() error { return nil }

func testApp(builder *stubBuilder, runtime *stubRuntime, st *memStore) *fiber.App {
	if st.deployments == nil {
		st.deployments = map[string]domain.Deployment{}
	}
	h := NewAppHandler(&service.Deployer{Builder: builder, Runtime: runtime, Store: st}, runtime, st)

	app := fiber.New()
	v1 := app.Group("/api/v1")
	apps := v1.Group("/apps")
	apps.Get("/", h.ListApps)
	apps.Post("/", h.DeployApp)
	apps.Delete("/:id", h.StopApp)
	apps.Get("/:id/logs", h.GetAppLogs)
	v1.Get("/containers", h.ListContainers)
	return app
}

func TestDeployApp(t *testing.T) {
	t.Run("deploys from a source dir", func(t *testing.T) {
		app := testApp(&stubBuilder{}, &stubRuntime{}, &memStore{})

		body := fmt.Sprintf(`{"name":"crm","source_dir":%q}`, t.TempDir())
		req := httptest.NewRequest("POST", "/api/v1/apps/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var dep domain.Deployment
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&dep))
		assert.Equal(t, "crm", dep.AppName)
		assert.Equal(t, "container-1", dep.ContainerID)
		assert.Equal(t, domain.StatusRunning, dep.Status)
	})

	t.Run("invalid body", func(t *testing.T) {
		app := testApp(&stubBuilder{}, &stubRuntime{}, &memStore{})
		req := httptest.NewRequest("POST", "/api/v1/apps/", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing manifest maps to bad request", func(t *testing.T) {
		app := testApp(&stubBuilder{err: fmt.Errorf("%w: requirements.txt", domain.ErrManifestMissing)}, &stubRuntime{}, &memStore{})

		body := fmt.Sprintf(`{"name":"crm","source_dir":%q}`, t.TempDir())
		req := httptest.NewRequest("POST", "/api/v1/apps/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("port conflict maps to conflict", func(t *testing.T) {
		app := testApp(&stubBuilder{}, &stubRuntime{launchErr: domain.ErrPortInUse}, &memStore{})

		body := fmt.Sprintf(`{"name":"crm","source_dir":%q}`, t.TempDir())
		req := httptest.NewRequest("POST", "/api/v1/apps/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("missing entry point maps to unprocessable", func(t *testing.T) {
		app := testApp(&stubBuilder{}, &stubRuntime{launchErr: domain.ErrEntryPointNotFound}, &memStore{})

		body := fmt.Sprintf(`{"name":"crm","source_dir":%q}`, t.TempDir())
		req := httptest.NewRequest("POST", "/api/v1/apps/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestStopApp(t *testing.T) {
	t.Run("stops a known deployment", func(t *testing.T) {
		st := &memStore{deployments: map[string]domain.Deployment{
			"d1": {ID: "d1", ContainerID: "c1", Status: domain.StatusRunning},
		}}
		app := testApp(&stubBuilder{}, &stubRuntime{}, st)

		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/apps/d1", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, domain.StatusStopped, st.deployments["d1"].Status)
	})

	t.Run("unknown deployment is not found", func(t *testing.T) {
		app := testApp(&stubBuilder{}, &stubRuntime{}, &memStore{})
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/apps/nope", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestGetAppLogs(t *testing.T) {
	st := &memStore{deployments: map[string]domain.Deployment{
		"d1": {ID: "d1", ContainerID: "c1", Status: domain.StatusRunning},
	}}
	app := testApp(&stubBuilder{}, &stubRuntime{logs: "INFO: Uvicorn running\n"}, st)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/apps/d1/logs", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Uvicorn running")
}

func TestListContainers(t *testing.T) {
	rt := &stubRuntime{containers: []domain.Container{
		{ID: "abc123", Name: "crm", State: "running", Port: 8000},
	}}
	app := testApp(&stubBuilder{}, rt, &memStore{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/containers", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got []domain.Container
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "crm", got[0].Name)
}
