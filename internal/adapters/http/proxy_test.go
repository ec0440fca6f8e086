package http

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slipway/internal/core/domain"
)

func TestExtractSubdomain(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"crm.localhost", "crm"},
		{"crm.example.com", "crm"},
		{"localhost", ""},
		{"www.example.com", ""},
		{"127.0.0.1", ""},
		{"::1", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractSubdomain(tt.host), "host %q", tt.host)
	}
}

func TestFindTarget(t *testing.T) {
	containers := []domain.Container{
		{Name: "stopped", State: "exited", IPAddress: "172.17.0.2", AppPort: 8000},
		{Name: "crm", State: "running", IPAddress: "172.17.0.3", AppPort: 8000},
		{Name: "noip", State: "running"},
		{Name: "legacy", State: "running", IPAddress: "172.17.0.4"},
	}

	t.Run("running container with address", func(t *testing.T) {
		assert.Equal(t, "172.17.0.3:8000", findTarget(containers, "crm"))
	})

	t.Run("exited container is skipped", func(t *testing.T) {
		assert.Equal(t, "", findTarget(containers, "stopped"))
	})

	t.Run("container without address is skipped", func(t *testing.T) {
		assert.Equal(t, "", findTarget(containers, "noip"))
	})

	t.Run("no port falls back to bare address", func(t *testing.T) {
		assert.Equal(t, "172.17.0.4", findTarget(containers, "legacy"))
	})

	t.Run("unknown name", func(t *testing.T) {
		assert.Equal(t, "", findTarget(containers, "nope"))
	})
}
