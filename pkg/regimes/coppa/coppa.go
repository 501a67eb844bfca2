// Package coppa implements the US COPPA regime: children's online privacy
// protection for services directed at or knowingly collecting from under-13s.
package coppa

import (
	"github.com/adra-labs/adra/pkg/regime"
)

const (
	RegimeID = "US_COPPA"

	SecConsent   = "§312.5"
	SecRetention = "§312.10"
)

// Spec returns the registry entry for the COPPA regime.
func Spec() *regime.Spec {
	return &regime.Spec{
		ID:           RegimeID,
		Name:         "US Children's Online Privacy Protection Act",
		Domain:       "data_protection",
		Framework:    "COPPA",
		Kind:         regime.KindDataProtection,
		Jurisdiction: "US",
		Enforceable:  true,
		L4Executable: true,
		Authority:    "US Federal Trade Commission",
		Applicable:   applicable,
		Resolve:      resolve,
	}
}

// Register installs the regime into the given registry.
func Register(r *regime.Registry) error {
	return r.Register(Spec())
}

func applicable(p regime.Payload) bool {
	meta := regime.Meta(p)
	if regime.GetBool(meta, "child_directed") {
		return true
	}
	personal := regime.GetMap(p, "personal_data")
	return regime.GetBool(personal, "minor_subject")
}

func resolve(p regime.Payload) ([]regime.Finding, error) {
	personal := regime.GetMap(p, "personal_data")

	var findings []regime.Finding

	if regime.GetBool(personal, "minor_subject") && !regime.GetBool(personal, "parental_consent") {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     SecConsent,
			Category:    "parental_consent",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityHigh,
			Scope:       regime.ScopeTransaction,
			Evidence:    map[string]any{"minor_subject": true, "parental_consent": false},
			Remediation: "Obtain verifiable parental consent before collecting from children.",
		})
	} else {
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  SecConsent,
			Category: "parental_consent",
			Status:   regime.StatusSatisfied,
			Severity: regime.SeverityLow,
			Scope:    regime.ScopeTransaction,
		})
	}

	return findings, nil
}
