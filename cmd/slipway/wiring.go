package main

import (
	"strings"

	"slipway/config"
	"slipway/internal/adapters/builder"
	"slipway/internal/adapters/docker"
	"slipway/internal/adapters/store"
	"slipway/internal/core/domain"
	"slipway/internal/core/service"
)

type app struct {
	cfg      config.Config
	builder  *builder.Adapter
	runtime  *docker.Adapter
	store    *store.SQLiteStore
	deployer *service.Deployer
}

// newApp wires the adapters and the deploy service for a command run.
func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	b, err := builder.NewAdapter()
	if err != nil {
		return nil, err
	}
	rt, err := docker.NewAdapter()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		builder:  b,
		runtime:  rt,
		store:    st,
		deployer: &service.Deployer{Builder: b, Runtime: rt, Store: st},
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}

// sourceFrom interprets a positional source argument: URLs and .git paths
// are repos, everything else is a local directory.
func sourceFrom(arg string) domain.BuildSource {
	if strings.Contains(arg, "://") || strings.HasSuffix(arg, ".git") {
		return domain.BuildSource{RepoURL: arg}
	}
	return domain.BuildSource{Dir: arg}
}
