// Package domain holds generation assembler types and ports
package domain

import "context"

// Answer is the assembler's final product. Raw provider failures never
// appear here; the worst case is a templated fallback
type Answer struct {
	Text      string `json:"text"`
	Language  string `json:"language"`
	Grounded  bool   `json:"grounded"`
	FromCache bool   `json:"from_cache"`
	Fallback  bool   `json:"fallback"`
}

// Generator produces text for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AssemblerPort is what the orchestrator consumes
type AssemblerPort interface {
	Assemble(ctx context.Context, queryText string, docs []ContextDoc, language string) (Answer, error)
}

// ContextDoc is the slice of a retrieved document the assembler needs
type ContextDoc struct {
	SchemeID string
	Text     string
}
