// Package module wires the query orchestrator
package module

import (
	"sahayak/internal/modkit"
	"sahayak/internal/modkit/httpkit"
	"sahayak/internal/platform/resilience"
	ansdomain "sahayak/internal/services/answer/domain"
	eligdomain "sahayak/internal/services/eligibility/domain"
	"sahayak/internal/services/query/domain"
	"sahayak/internal/services/query/repo"
	"sahayak/internal/services/query/service"
	retrdomain "sahayak/internal/services/retrieval/domain"
)

// Ports exposed by the query module
type Ports struct {
	Orchestrator domain.OrchestratorPort
}

// Capabilities are the external collaborators the orchestrator drives.
// Optional ones may be left nil
type Capabilities struct {
	Retriever retrdomain.RetrieverPort
	Assembler ansdomain.AssemblerPort
	Checker   eligdomain.CheckerPort
	Speech    domain.Speech
	Translate domain.Translator
	Intent    domain.IntentClassifier
}

// Module implements the query service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the query module
func New(deps modkit.Deps, caps Capabilities) *Module {
	opts := FromConfig(deps.Cfg)

	var records domain.RecordWriter
	if deps.CH != nil {
		records = repo.NewCH(deps.CH)
	}

	svc := service.New(
		caps.Retriever, caps.Assembler, caps.Checker,
		caps.Speech, caps.Translate, caps.Intent,
		records,
		deps.Breakers,
		resilience.RetryPolicy{MaxAttempts: opts.MaxAttempts, BaseDelay: opts.BaseDelay},
		deps.Writes,
		service.Config{Deadline: opts.Deadline, K: opts.K, Voice: opts.Voice},
	)

	m := &Module{deps: deps}
	m.ports = Ports{Orchestrator: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "query" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; the HTTP surface lives in the
// api module
func (m *Module) MountRoutes(httpkit.Router) {}
