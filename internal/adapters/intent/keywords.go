package intent

import (
	"context"
	"strings"

	"sahayak/internal/services/query/domain"
)

// eligibility trigger phrases, lowercase
var triggers = []string{
	"am i eligible",
	"do i qualify",
	"can i get",
	"eligible for",
	"क्या मैं पात्र",
	"क्या मुझे मिल",
	"पात्रता",
}

// Keywords is a rule-based classifier for deployments without a
// generation capability. It matches trigger phrases and scheme names
type Keywords struct {
	schemes map[string]string // lowercase phrase -> scheme id
}

// NewKeywords constructs the classifier from a phrase-to-scheme table
func NewKeywords(schemes map[string]string) *Keywords {
	normalized := make(map[string]string, len(schemes))
	for phrase, id := range schemes {
		normalized[strings.ToLower(phrase)] = id
	}
	return &Keywords{schemes: normalized}
}

// Classify implements domain.IntentClassifier
func (k *Keywords) Classify(_ context.Context, text string) (domain.Intent, error) {
	lower := strings.ToLower(text)

	wants := false
	for _, t := range triggers {
		if strings.Contains(lower, t) {
			wants = true
			break
		}
	}
	if !wants {
		return domain.Intent{}, nil
	}

	for phrase, id := range k.schemes {
		if strings.Contains(lower, phrase) {
			return domain.Intent{WantsEligibility: true, SchemeID: id}, nil
		}
	}
	// eligibility intent without a recognizable scheme; the
	// orchestrator skips the check when no scheme is named
	return domain.Intent{WantsEligibility: true}, nil
}
