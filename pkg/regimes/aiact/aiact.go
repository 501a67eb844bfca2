// Package aiact implements the EU AI Act regime. The legacy "AI_ACT"
// identifier canonicalizes to this regime's "EU_AI_ACT".
package aiact

import (
	"github.com/adra-labs/adra/pkg/regime"
)

const (
	RegimeID = "EU_AI_ACT"

	ArtProhibited   = "Art 5"
	ArtRiskMgmt     = "Art 9"
	ArtTransparency = "Art 13"
	ArtOversight    = "Art 14"
)

// prohibitedPractices are the Art 5 categories that can never be deployed.
var prohibitedPractices = map[string]bool{
	"SOCIAL_SCORING":           true,
	"SUBLIMINAL_MANIPULATION":  true,
	"REALTIME_BIOMETRIC_ID":    true,
	"EMOTION_RECOGNITION_WORK": true,
}

// Spec returns the registry entry for the EU AI Act regime.
func Spec() *regime.Spec {
	return &regime.Spec{
		ID:           RegimeID,
		Name:         "EU Artificial Intelligence Act",
		Domain:       "ai_governance",
		Framework:    "EU_AI_ACT",
		Kind:         regime.KindAIGovernance,
		Jurisdiction: "EU",
		Enforceable:  true,
		L4Executable: true,
		Authority:    "EU AI Office",
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

	// Art 5 prohibited practices: unconditional, always blocking.
	if practice := regime.GetString(ai, "practice"); prohibitedPractices[practice] {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     ArtProhibited,
			Category:    "prohibited_practice",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityCritical,
			Scope:       regime.ScopeTransaction,
			Evidence:    map[string]any{"practice": practice},
			Remediation: "The practice is prohibited under Art 5; it cannot be deployed in the EU.",
		})
	} else {
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  ArtProhibited,
			Category: "prohibited_practice",
			Status:   regime.StatusSatisfied,
			Severity: regime.SeverityLow,
			Scope:    regime.ScopeTransaction,
			Evidence: map[string]any{"practice": practice},
		})
	}

	// High-risk systems owe Art 9/13/14 obligations.
	if regime.GetString(ai, "risk_class") == "HIGH" {
		if !regime.GetBool(ai, "human_oversight") {
			findings = append(findings, regime.Finding{
				RegimeID:    RegimeID,
				Article:     ArtOversight,
				Category:    "human_oversight",
				Status:      regime.StatusViolated,
				Severity:    regime.SeverityHigh,
				Scope:       regime.ScopeTransaction,
				Evidence:    map[string]any{"risk_class": "HIGH", "human_oversight": false},
				Remediation: "High-risk AI systems require effective human oversight (Art 14).",
			})
		}
		if !regime.GetBool(ai, "transparency_notice") {
			findings = append(findings, regime.Finding{
				RegimeID:    RegimeID,
				Article:     ArtTransparency,
				Category:    "transparency",
				Status:      regime.StatusViolated,
				Severity:    regime.SeverityMedium,
				Scope:       regime.ScopePlatformAudit,
				Evidence:    map[string]any{"transparency_notice": false},
				Remediation: "Provide instructions for use and transparency information (Art 13).",
			})
		}
		if regime.GetBool(ai, "human_oversight") && regime.GetBool(ai, "transparency_notice") {
			findings = append(findings, regime.Finding{
				RegimeID: RegimeID,
				Article:  ArtRiskMgmt,
				Category: "risk_management",
				Status:   regime.StatusSatisfied,
				Severity: regime.SeverityLow,
				Scope:    regime.ScopeTransaction,
				Evidence: map[string]any{"risk_class": "HIGH"},
			})
		}
	}

	return findings, nil
}
