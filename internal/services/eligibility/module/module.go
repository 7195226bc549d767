// Package module wires the eligibility checker
package module

import (
	"context"

	"sahayak/internal/core/rules"
	"sahayak/internal/modkit"
	"sahayak/internal/modkit/httpkit"
	"sahayak/internal/platform/resilience"
	"sahayak/internal/services/eligibility/domain"
	"sahayak/internal/services/eligibility/repo"
	"sahayak/internal/services/eligibility/service"
)

// Ports exposed by the eligibility module
type Ports struct {
	Checker domain.CheckerPort
}

// Module implements the eligibility service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the eligibility module over the shared Postgres and
// ClickHouse seams
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	storage := repo.NewPG().Bind(deps.PG)
	var records domain.RecordWriter
	if deps.CH != nil {
		records = repo.NewCH(deps.CH)
	}

	svc := service.New(
		profileStore{storage}, specStore{storage}, records,
		deps.Breakers,
		resilience.RetryPolicy{MaxAttempts: opts.MaxAttempts, BaseDelay: opts.BaseDelay},
		deps.Writes,
	)

	m := &Module{deps: deps}
	m.ports = Ports{Checker: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "eligibility" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; eligibility exposes no endpoints
func (m *Module) MountRoutes(httpkit.Router) {}

type profileStore struct{ s repo.Storage }

func (a profileStore) Get(ctx context.Context, userID string) (rules.Profile, error) {
	return a.s.GetProfile(ctx, userID)
}

type specStore struct{ s repo.Storage }

func (a specStore) Get(ctx context.Context, schemeID string) (rules.Spec, error) {
	return a.s.GetSpec(ctx, schemeID)
}
