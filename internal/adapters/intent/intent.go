// Package intent classifies whether a query asks about the user's own
// eligibility for a specific scheme, using the generation capability
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	perr "sahayak/internal/platform/errors"
	"sahayak/internal/services/query/domain"
)

// Generator is the text capability the classifier prompts
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Classifier implements domain.IntentClassifier over a Generator
type Classifier struct {
	gen Generator
}

// New constructs the classifier
func New(gen Generator) *Classifier { return &Classifier{gen: gen} }

const classifyPrompt = `Decide whether the question below asks if the speaker themselves qualifies for a specific welfare scheme.
Reply with only a JSON object of the form {"eligibility": true|false, "scheme_id": "<kebab-case scheme name or empty>"}.

Question: %q`

type verdict struct {
	Eligibility bool   `json:"eligibility"`
	SchemeID    string `json:"scheme_id"`
}

// Classify implements domain.IntentClassifier
func (c *Classifier) Classify(ctx context.Context, text string) (domain.Intent, error) {
	out, err := c.gen.Generate(ctx, fmt.Sprintf(classifyPrompt, text))
	if err != nil {
		return domain.Intent{}, err
	}
	v, err := parse(out)
	if err != nil {
		return domain.Intent{}, err
	}
	return domain.Intent{WantsEligibility: v.Eligibility, SchemeID: v.SchemeID}, nil
}

// parse tolerates the model wrapping its JSON in prose or code fences
func parse(out string) (verdict, error) {
	start := strings.IndexByte(out, '{')
	end := strings.LastIndexByte(out, '}')
	if start < 0 || end <= start {
		return verdict{}, perr.JSONErrf("no JSON object in classifier output %q", out)
	}
	var v verdict
	if err := json.Unmarshal([]byte(out[start:end+1]), &v); err != nil {
		return verdict{}, perr.Wrap(err, perr.ErrorCodeJSON, "malformed classifier output")
	}
	return v, nil
}
