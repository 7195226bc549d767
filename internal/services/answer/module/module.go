// Package module wires the generation assembler
package module

import (
	"sahayak/internal/modkit"
	"sahayak/internal/modkit/httpkit"
	"sahayak/internal/platform/resilience"
	"sahayak/internal/services/answer/domain"
	"sahayak/internal/services/answer/service"
)

// Ports exposed by the answer module
type Ports struct {
	Assembler domain.AssemblerPort
}

// Module implements the answer service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the answer module around a generator capability
func New(deps modkit.Deps, gen domain.Generator) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(gen, deps.Cache, deps.Breakers,
		resilience.RetryPolicy{MaxAttempts: opts.MaxAttempts, BaseDelay: opts.BaseDelay},
		service.Config{AnswerTTL: opts.AnswerTTL, Threshold: opts.Threshold},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Assembler: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "answer" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; the assembler has no endpoints
func (m *Module) MountRoutes(httpkit.Router) {}
