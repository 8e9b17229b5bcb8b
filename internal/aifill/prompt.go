package aifill

import (
	"fmt"
	"strings"

	"github.com/freightlayer/extraction-engine/internal/model"
)

// buildPrompt constructs the single user message sent to the provider.
// It lists only the requested gap names so the model cannot "discover"
// fields the deterministic core already resolved (§4.6).
func buildPrompt(text string, gaps []model.Kind, carrierHint, documentType string) string {
	var b strings.Builder

	b.WriteString("You extract freight logistics data from email and document text.\n")
	b.WriteString("Return ONLY a JSON object, no prose, no markdown fences.\n")
	b.WriteString("The object must have exactly these keys, each either a string value found verbatim in the text or null if absent:\n")
	for _, g := range gaps {
		fmt.Fprintf(&b, "- %s\n", describeGap(g))
	}
	if model.PartyKinds[anyPartyKind(gaps)] {
		b.WriteString("For party keys, the value is an object with keys: name, address_lines (array), city, state, postal_code, country, phone, email.\n")
	}
	if carrierHint != "" {
		fmt.Fprintf(&b, "The sender is carrier %q.\n", carrierHint)
	}
	if documentType != "" {
		fmt.Fprintf(&b, "The document type is %q.\n", documentType)
	}
	b.WriteString("Never invent a value that does not literally appear in the text below.\n\n")
	b.WriteString("TEXT:\n")
	b.WriteString(text)
	return b.String()
}

func anyPartyKind(gaps []model.Kind) model.Kind {
	for _, g := range gaps {
		if model.PartyKinds[g] {
			return g
		}
	}
	return ""
}

// describeGap renders a gap key as "name: kind" so the model sees both
// the JSON key it must use and a hint of its expected shape.
func describeGap(k model.Kind) string {
	hint := "free text"
	switch {
	case model.DateKinds[k]:
		hint = "a calendar date"
	case model.PartyKinds[k]:
		hint = "a party block"
	}
	return fmt.Sprintf("%q (%s)", string(k), hint)
}
