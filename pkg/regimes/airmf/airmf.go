// Package airmf implements the NIST AI Risk Management Framework regime,
// a cross-jurisdiction governance baseline. All of its findings are
// advisory or organizational; it never blocks a transaction.
package airmf

import (
	"github.com/adra-labs/adra/pkg/regime"
)

const (
	RegimeID = "NIST_AI_RMF"

	FnGovern  = "GOVERN 1.1"
	FnMap     = "MAP 1.1"
	FnMeasure = "MEASURE 2.1"
)

// Spec returns the registry entry for the NIST AI RMF baseline.
func Spec() *regime.Spec {
	return &regime.Spec{
		ID:           RegimeID,
		Name:         "NIST AI Risk Management Framework",
		Domain:       "ai_governance",
		Framework:    "NIST_AI_RMF_1.0",
		Kind:         regime.KindAIGovernance,
		Jurisdiction: "GLOBAL",
		Enforceable:  false,
		L4Executable: false,
		Authority:    "US National Institute of Standards and Technology",
		Applicable:   applicable,
		Resolve:      resolve,
	}
}

// Register installs the regime into the given registry.
func Register(r *regime.Registry) error {
	return r.Register(Spec())
}

func applicable(p regime.Payload) bool {
	return regime.GetMap(p, "ai_system") != nil
}

func resolve(p regime.Payload) ([]regime.Finding, error) {
	ai := regime.GetMap(p, "ai_system")

	var findings []regime.Finding

	if !regime.GetBool(ai, "governance_program") {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     FnGovern,
			Category:    "governance",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityMedium,
			Scope:       regime.ScopeOrganizational,
			Evidence:    map[string]any{"governance_program": false},
			Remediation: "Stand up an accountable AI governance program.",
		})
	} else {
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  FnGovern,
			Category: "governance",
			Status:   regime.StatusSatisfied,
			Severity: regime.SeverityLow,
			Scope:    regime.ScopeOrganizational,
		})
	}

	if !regime.GetBool(ai, "impact_assessed") {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     FnMap,
			Category:    "context_mapping",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityLow,
			Scope:       regime.ScopeAdvisory,
			Evidence:    map[string]any{"impact_assessed": false},
			Remediation: "Document intended use and downstream impact before deployment.",
		})
	}

	return findings, nil
}
