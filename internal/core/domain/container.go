package domain

// Container represents a running (or exited) app container as reported by
// the container runtime.
type Container struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Status    string `json:"status"`
	State     string `json:"state"` // running, exited, etc.
	IPAddress string `json:"ip_address,omitempty"`
	Port      int    `json:"port,omitempty"`           // host port the app is published on
	AppPort   int    `json:"container_port,omitempty"` // port the server binds inside the container
}
