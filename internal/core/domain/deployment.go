package domain

import "time"

// Deployment statuses. A deployment moves from building to running, or to
// failed; stopped is terminal.
const (
	StatusBuilding = "building"
	StatusRunning  = "running"
	StatusStopped  = "stopped"
	StatusFailed   = "failed"
)

// Deployment is the persisted record of one build-and-launch of an app.
type Deployment struct {
	ID          string    `json:"id"`
	AppName     string    `json:"app_name"`
	Image       string    `json:"image"`
	ContainerID string    `json:"container_id,omitempty"`
	Port        int       `json:"port"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
