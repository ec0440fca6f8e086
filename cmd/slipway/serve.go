package main

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	httpadapter "slipway/internal/adapters/http"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the slipway API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			appHandler := httpadapter.NewAppHandler(a.deployer, a.runtime, a.store)
			proxyHandler := httpadapter.NewProxyHandler(a.runtime)

			srv := fiber.New(fiber.Config{DisableStartupMessage: true})

			// Subdomain proxy first so app-name.localhost requests never hit
			// the API routes.
			srv.Use(proxyHandler.ProxyRequest)

			api := srv.Group("/api")
			v1 := api.Group("/v1")

			apps := v1.Group("/apps")
			apps.Get("/", appHandler.ListApps)
			apps.Post("/", appHandler.DeployApp)
			apps.Delete("/:id", appHandler.StopApp)
			apps.Get("/:id/logs", appHandler.GetAppLogs)

			v1.Get("/containers", appHandler.ListContainers)

			slog.Info("server starting", "listen", a.cfg.Listen)
			return srv.Listen(a.cfg.Listen)
		},
	}
}
