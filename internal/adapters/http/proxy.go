package http

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"slipway/internal/core/domain"
	"slipway/internal/core/ports"
)

// ProxyHandler routes subdomain requests (app-name.localhost) to the
// matching app container.
type ProxyHandler struct {
	service ports.ContainerService
}

func NewProxyHandler(service ports.ContainerService) *ProxyHandler {
	return &ProxyHandler{service: service}
}

// ProxyRequest intercepts requests whose hostname carries a subdomain and
// forwards them to the named app's container address. Requests without a
// matching running app fall through or 404.
func (h *ProxyHandler) ProxyRequest(c *fiber.Ctx) error {
	subdomain := extractSubdomain(c.Hostname())
	if subdomain == "" {
		return c.Next()
	}

	containers, err := h.service.ListContainers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to list containers")
	}

	target := findTarget(containers, subdomain)
	if target == "" {
		return c.Status(fiber.StatusNotFound).SendString(fmt.Sprintf("App '%s' not found or not running", subdomain))
	}

	remote, err := url.Parse("http://" + target)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Invalid target URL")
	}

	proxy := httputil.NewSingleHostReverseProxy(remote)

	// Rewrite the Host header so the app sees an address it expects instead
	// of the public subdomain.
	originalDirector := proxy.Director
	proxy.Director = func(req *http.Request) {
		originalDirector(req)
		req.Host = remote.Host
		req.URL.Host = remote.Host
		req.URL.Scheme = remote.Scheme
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprintf(w, "proxy: target=%s error=%v", target, err)
	}

	return adaptor.HTTPHandler(proxy)(c)
}

func extractSubdomain(host string) string {
	if net.ParseIP(host) != nil {
		return ""
	}
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return ""
	}
	if parts[0] == "www" {
		return ""
	}
	return parts[0]
}

// findTarget picks the running container named after the subdomain and
// returns its dial address: the container IP and the port the server binds
// inside it.
func findTarget(containers []domain.Container, name string) string {
	for _, c := range containers {
		if c.Name != name || c.State != "running" {
			continue
		}
		if c.IPAddress == "" {
			continue
		}
		if c.AppPort != 0 {
			return fmt.Sprintf("%s:%d", c.IPAddress, c.AppPort)
		}
		return c.IPAddress
	}
	return ""
}
