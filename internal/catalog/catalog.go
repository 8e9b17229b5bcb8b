// Package catalog is the static, versioned pattern catalog (C1). It ships
// as immutable data: patterns, confidence weights and validator/normalizer
// references live in Go literals built by the package's buildXxx()
// functions, following the teacher's static-builder approach in
// internal/retrieval/spec_normalizer.go (buildCategoryAliases,
// buildSpecAliases, buildCategorySpecMap). No code path rewrites the
// catalog at runtime (§9).
package catalog

import (
	"regexp"

	"github.com/freightlayer/extraction-engine/internal/model"
)

// Version is the monotonically increasing catalog version. Every record
// emitted by the pipeline orchestrator records the version used (§4.1).
// Bump this whenever an entry below changes.
const Version = 1

// Entry is one pattern-catalog entry (§3 Pattern Catalog entries).
type Entry struct {
	PatternID        string
	Kind             model.Kind
	Regex            *regexp.Regexp
	ConfidenceWeight int
	BuilderID        string
	CarrierScope     []string // empty means "applies to all carriers"
	NegativeContext  *regexp.Regexp
}

// AppliesToCarrier reports whether the entry applies given an (optional)
// carrier hint.
func (e Entry) AppliesToCarrier(carrier string) bool {
	if len(e.CarrierScope) == 0 || carrier == "" {
		return true
	}
	for _, c := range e.CarrierScope {
		if c == carrier {
			return true
		}
	}
	return false
}

// Catalog is the immutable, shared pattern catalog loaded once at
// startup (§5 Shared resources).
type Catalog struct {
	Version int
	entries map[model.Kind][]Entry
}

// Entries returns the ordered entry list for kind; order expresses
// preference among equally confident matches (§4.1).
func (c *Catalog) Entries(kind model.Kind) []Entry {
	return c.entries[kind]
}

// Kinds returns every kind the catalog has at least one entry for.
func (c *Catalog) Kinds() []model.Kind {
	kinds := make([]model.Kind, 0, len(c.entries))
	for k := range c.entries {
		kinds = append(kinds, k)
	}
	return kinds
}

// New builds the default catalog. Changing a pattern below requires
// incrementing Version.
func New() *Catalog {
	c := &Catalog{Version: Version, entries: make(map[model.Kind][]Entry)}
	for _, group := range []func() []Entry{
		identifierEntries,
		routingEntries,
		dateEntries,
		cargoEntries,
		financialEntries,
	} {
		for _, e := range group() {
			c.entries[e.Kind] = append(c.entries[e.Kind], e)
		}
	}
	return c
}

func mustRe(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}
