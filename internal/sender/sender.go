// Package sender implements C4: mapping a sender identity to a sender
// category and optional carrier identity. Pattern-driven over the sender
// domain only; the local-part is not examined. Grounded on the teacher's
// alias-map builder style (internal/retrieval/spec_normalizer.go
// buildCategoryAliases).
// No side effects.
package sender

import (
	"strings"

	"github.com/freightlayer/extraction-engine/internal/model"
)

// Classification is C4's output (§4.4).
type Classification struct {
	Category model.SenderCategory
	Carrier  string // empty when no carrier could be resolved
}

// domainRule maps a substring of the sender's domain to a category and,
// for carriers, the canonical carrier name. Rules are tried in order and
// the first match wins.
type domainRule struct {
	domainContains string
	category       model.SenderCategory
	carrier        string
}

var domainRules = []domainRule{
	{"maersk.com", model.SenderCarrier, "Maersk"},
	{"msc.com", model.SenderCarrier, "MSC"},
	{"cma-cgm.com", model.SenderCarrier, "CMA CGM"},
	{"hapag-lloyd.com", model.SenderCarrier, "Hapag-Lloyd"},
	{"one-line.com", model.SenderCarrier, "ONE"},
	{"evergreen-line.com", model.SenderCarrier, "Evergreen"},
	{"yangming.com", model.SenderCarrier, "Yang Ming"},
	{"hmm21.com", model.SenderCarrier, "HMM"},
	{"zim.com", model.SenderCarrier, "ZIM"},
	{"coscoshipping.com", model.SenderCarrier, "COSCO"},

	{"forwarder", model.SenderFreightForwarder, ""},
	{"logistics", model.SenderFreightForwarder, ""},
	{"cargo", model.SenderFreightForwarder, ""},
	{"freight", model.SenderFreightForwarder, ""},

	{"customsbroker", model.SenderCustomsBroker, ""},
	{"customs", model.SenderCustomsBroker, ""},
	{"cbp.gov", model.SenderCustomsBroker, ""},

	{"terminal", model.SenderTerminal, ""},
	{"port", model.SenderTerminal, ""},

	{"trucking", model.SenderTrucking, ""},
	{"drayage", model.SenderTrucking, ""},

	{"rail", model.SenderRail, ""},
}

// internalRelayDomains are domains the operator relays its own mail
// through; a message from one of these is classified internal_relay, and
// the classifier then prefers OriginalSenderIdentity to resolve carrier
// (§4.4).
var internalRelayDomains = []string{
	"mail-relay.internal", "notifications.internal", "ops-relay.internal",
}

// Classify maps a sender (and, for forwarded messages, an original
// sender) identity to a category and optional carrier. A null identity
// returns {other, ""} (§4.4).
func Classify(senderIdentity, originalSenderIdentity string) Classification {
	if strings.TrimSpace(senderIdentity) == "" {
		return Classification{Category: model.SenderOther}
	}

	domain := domainOf(senderIdentity)
	if isInternalRelay(domain) {
		// Prefer the original sender identity when resolving carrier.
		if originalSenderIdentity != "" {
			if c := classifyDomain(domainOf(originalSenderIdentity)); c.carrier != "" {
				return Classification{Category: model.SenderInternalRelay, Carrier: c.carrier}
			}
		}
		return Classification{Category: model.SenderInternalRelay}
	}

	c := classifyDomain(domain)
	return Classification{Category: c.category, Carrier: c.carrier}
}

func isInternalRelay(domain string) bool {
	for _, d := range internalRelayDomains {
		if domain == d {
			return true
		}
	}
	return false
}

type resolved struct {
	category model.SenderCategory
	carrier  string
}

func classifyDomain(domain string) resolved {
	lower := strings.ToLower(domain)
	for _, rule := range domainRules {
		if strings.Contains(lower, rule.domainContains) {
			return resolved{category: rule.category, carrier: rule.carrier}
		}
	}
	return resolved{category: model.SenderOther}
}

func domainOf(identity string) string {
	idx := strings.LastIndex(identity, "@")
	if idx < 0 || idx == len(identity)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(identity[idx+1:]))
}
