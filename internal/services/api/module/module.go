// Package module exposes the query pipeline over HTTP
package module

import (
	"net/http"

	"sahayak/internal/modkit"
	"sahayak/internal/modkit/httpkit"
	pnet "sahayak/internal/platform/net"
	"sahayak/internal/services/query/domain"
)

// askBody is the POST /queries payload. Audio rides as base64, text
// wins when both are present
type askBody struct {
	Text      string `json:"text" validate:"required_without=Audio"`
	Audio     []byte `json:"audio,omitempty" validate:"omitempty"`
	Language  string `json:"language,omitempty" validate:"omitempty,langtag"`
	WantVoice bool   `json:"want_voice,omitempty"`
}

// Module implements the api service module
type Module struct {
	deps modkit.Deps
	orch domain.OrchestratorPort
}

// New constructs the api module over the orchestrator port
func New(deps modkit.Deps, orch domain.OrchestratorPort) *Module {
	return &Module{deps: deps, orch: orch}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "api" }

// Ports satisfies modkit.Module; the api module exposes none
func (m *Module) Ports() any { return struct{}{} }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Post("/queries", m.ask())
	r.Get("/healthz", m.health())
}

func (m *Module) ask() httpkit.Handler {
	return httpkit.JSON(func(r *http.Request, in askBody) (any, error) {
		resp, err := m.orch.Ask(r.Context(), domain.Request{
			UserID:    pnet.UserID(r.Context()),
			Text:      in.Text,
			Audio:     in.Audio,
			Language:  in.Language,
			WantVoice: in.WantVoice,
		})
		if err != nil {
			return nil, err
		}
		return resp, nil
	})
}

func (m *Module) health() httpkit.Handler {
	return httpkit.Call(func(*http.Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})
}
