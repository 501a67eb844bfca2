package engine

import (
	"github.com/adra-labs/adra/pkg/profile"
	"github.com/adra-labs/adra/pkg/regime"
	"github.com/adra-labs/adra/pkg/regimes/custom"
)

// ProfileRuleSource adapts the profile document store into the custom
// regime's rule source, so profile-declared CEL rules flow into the
// PROFILE_CUSTOM regime without the two packages depending on each other.
type ProfileRuleSource struct {
	Store *profile.Store
}

// RulesFor returns the CEL rules declared by the given profile.
func (s ProfileRuleSource) RulesFor(profileID string) []custom.Rule {
	if s.Store == nil || profileID == "" {
		return nil
	}
	doc, ok := s.Store.Lookup(profileID)
	if !ok {
		return nil
	}
	rules := make([]custom.Rule, 0, len(doc.CustomRules))
	for _, r := range doc.CustomRules {
		rules = append(rules, custom.Rule{
			ID:          r.ID,
			Expr:        r.Expr,
			Category:    r.Category,
			Severity:    regime.ParseSeverity(r.Severity),
			Scope:       regime.EnforcementScope(r.Scope),
			Remediation: r.Remediation,
		})
	}
	return rules
}
