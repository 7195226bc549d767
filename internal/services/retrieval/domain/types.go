// Package domain holds retrieval types and capability ports
package domain

import "errors"

// Section tags what part of a scheme document a chunk came from
type Section string

const (
	SectionEligibility Section = "eligibility"
	SectionBenefits    Section = "benefits"
	SectionProcess     Section = "process"
	SectionGeneral     Section = "general"
)

// Document is one retrieved policy chunk. Transient, never persisted here
type Document struct {
	SchemeID string  `json:"scheme_id"`
	ChunkID  string  `json:"chunk_id"`
	Text     string  `json:"text"`
	Section  Section `json:"section"`
	Score    float64 `json:"score"`
}

// Neighbor is the raw vector index hit before ranking
type Neighbor struct {
	ChunkID  string
	SchemeID string
	Section  string
	Text     string
	Score    float64
}

// ErrNoMatch signals the index held nothing relevant. It is an outcome
// callers branch on, distinct from "call not made" and from failures
var ErrNoMatch = errors.New("retrieval: no matching documents")
