// Package gemini adapts the Google GenAI SDK to the embed, generate and
// translate capability ports
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"sahayak/internal/platform/config"
	perr "sahayak/internal/platform/errors"
)

// Options configures the adapter
type Options struct {
	APIKey        string
	EmbedModel    string
	GenerateModel string
}

// FromConfig reads adapter options from env
func FromConfig(cfg config.Conf) Options {
	g := cfg.Prefix("GEMINI_")
	return Options{
		APIKey:        g.MustString("API_KEY"),
		EmbedModel:    g.MayString("EMBED_MODEL", "gemini-embedding-001"),
		GenerateModel: g.MayString("GENERATE_MODEL", "gemini-2.0-flash"),
	}
}

// Client implements the Embedder, Generator and Translator ports
type Client struct {
	c    *genai.Client
	opts Options
}

// New dials the GenAI API
func New(ctx context.Context, opts Options) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: opts.APIKey})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "genai client")
	}
	return &Client{c: c, opts: opts}, nil
}

// Embed returns the embedding vector for text
func (g *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	resp, err := g.c.Models.EmbedContent(ctx, g.opts.EmbedModel, contents, nil)
	if err != nil {
		return nil, provErr(err, "embed")
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, perr.Unavailablef("embed returned no vector")
	}
	return resp.Embeddings[0].Values, nil
}

// Generate produces text for prompt
func (g *Client) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := g.c.Models.GenerateContent(ctx, g.opts.GenerateModel, contents, nil)
	if err != nil {
		return "", provErr(err, "generate")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", perr.Unavailablef("generate returned no candidates")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", perr.Unavailablef("generate returned empty text")
	}
	return out, nil
}

// Translate renders text from one language into another
func (g *Client) Translate(ctx context.Context, text, from, to string) (string, error) {
	if from == to {
		return text, nil
	}
	prompt := fmt.Sprintf(
		"Translate the following text from %s to %s. Reply with the translation only.\n\n%s",
		from, to, text)
	out, err := g.Generate(ctx, prompt)
	if err != nil {
		return "", perr.WithOp(err, "translate")
	}
	return out, nil
}

// provErr types a provider failure as transient so the retry policy
// picks it up
func provErr(err error, op string) error {
	return perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "gemini"), op)
}
