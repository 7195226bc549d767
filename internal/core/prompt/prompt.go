// Package prompt builds grounded generation prompts
package prompt

import (
	"fmt"
	"strings"
)

// Persona is the fixed instruction every prompt opens with
const Persona = "You are Sahayak, a welfare scheme assistant for Indian citizens. " +
	"You explain government schemes in simple, respectful language."

// Doc is one retrieved context chunk tagged with its source scheme
type Doc struct {
	SchemeID string
	Text     string
}

// Build assembles the generation prompt from context documents and the
// user's question. strict adds the cite-only-context directive used on
// the single regeneration attempt after a failed grounding check
func Build(question string, docs []Doc, language string, strict bool) string {
	var b strings.Builder
	b.WriteString(Persona)
	b.WriteString("\n\nContext:\n")
	for _, d := range docs {
		fmt.Fprintf(&b, "[scheme:%s] %s\n", d.SchemeID, strings.TrimSpace(d.Text))
	}
	fmt.Fprintf(&b, "\nQuestion: %s\n\n", strings.TrimSpace(question))
	fmt.Fprintf(&b, "Answer only in %s and only from the context above.", language)
	if strict {
		b.WriteString(" Cite only sentences that appear in the context." +
			" If the context does not answer the question, say you do not have enough information.")
	}
	return b.String()
}
