// Package module wires the retrieval engine
package module

import (
	"sahayak/internal/modkit"
	"sahayak/internal/modkit/httpkit"
	"sahayak/internal/platform/resilience"
	"sahayak/internal/services/retrieval/domain"
	"sahayak/internal/services/retrieval/service"
)

// Ports exposed by the retrieval module
type Ports struct {
	Retriever domain.RetrieverPort
}

// Module implements the retrieval service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the retrieval module. The embedder and vector index
// are capability adapters owned by the caller
func New(deps modkit.Deps, embed domain.Embedder, index domain.VectorIndex) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(embed, index, deps.Cache, deps.Breakers,
		resilience.RetryPolicy{MaxAttempts: opts.MaxAttempts, BaseDelay: opts.BaseDelay},
		service.Config{TTL: opts.TTL, K: opts.K},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Retriever: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "retrieval" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; retrieval exposes no endpoints
func (m *Module) MountRoutes(httpkit.Router) {}
