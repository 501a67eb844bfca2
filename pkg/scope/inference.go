package scope

import (
	"github.com/adra-labs/adra/pkg/regime"
)

// inferenceAllowList is the fixed set of regime ids the fallback may
// enable. No inference stage may fabricate a regime id outside this list.
var inferenceAllowList = map[string]bool{
	"EU_GDPR":               true,
	"EU_DSA":                true,
	"EU_AI_ACT":             true,
	"TRANSACTION_INTEGRITY": true,
	"AML_CFT":               true,
	"PCI_DSS":               true,
	"EU_MICA":               true,
	"NIST_AI_RMF":           true,
	"US_COPPA":              true,
}

// infer builds a scope decision when no authoritative profile document is
// available. Four ordered stages, each de-duplicating against what is
// already present:
//
//  1. hard jurisdictional law
//  2. cross-jurisdiction governance baselines
//  3. industry-specific integrity regimes
//  4. payload feature-flag add-ons
func (r *Resolver) infer(p regime.Payload, industryID, profileID string) *Decision {
	jurisdiction := regime.GetString(regime.Meta(p), "jurisdiction")
	if jurisdiction == "" {
		jurisdiction = "GLOBAL"
	}

	var enabled []string
	seen := make(map[string]bool)
	add := func(ids ...string) {
		for _, id := range ids {
			cid := regime.Canonical(id)
			if seen[cid] || !inferenceAllowList[cid] || !r.registry.Has(cid) {
				continue
			}
			seen[cid] = true
			enabled = append(enabled, cid)
		}
	}

	// Stage 1: hard jurisdictional law.
	switch jurisdiction {
	case "EU":
		add("EU_GDPR")
		if industryID == "SOCIAL_MEDIA" || regime.GetBool(regime.Meta(p), "is_vlop") {
			add("EU_DSA")
		}
	case "US":
		if regime.GetBool(regime.Meta(p), "child_directed") {
			add("US_COPPA")
		}
	}

	// Stage 2: cross-jurisdiction governance baselines.
	add("NIST_AI_RMF")

	// Stage 3: industry-specific integrity regimes.
	switch industryID {
	case "ECOMMERCE":
		add("TRANSACTION_INTEGRITY", "PCI_DSS")
	case "FINTECH":
		add("AML_CFT", "TRANSACTION_INTEGRITY")
	case "SOCIAL_MEDIA":
		add("EU_DSA")
	}

	// Stage 4: payload feature-flag add-ons.
	if regime.GetMap(p, "ai_system") != nil {
		add("EU_AI_ACT")
	}
	if regime.GetMap(p, "crypto_asset") != nil {
		add("EU_MICA")
	}
	if regime.GetMap(p, "payment") != nil {
		add("PCI_DSS")
	}
	if regime.GetBool(regime.RiskIndicators(p), "fraud_suspected") {
		add("TRANSACTION_INTEGRITY")
	}

	return &Decision{
		IndustryID:     industryID,
		ProfileID:      profileID,
		Jurisdiction:   jurisdiction,
		EnabledRegimes: r.registry.Sort(enabled),
		Inferred:       true,
	}
}
