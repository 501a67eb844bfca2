// Package dsa implements the EU Digital Services Act regime: platform-safety
// duties for hosting services and very large online platforms (VLOPs).
package dsa

import (
	"github.com/adra-labs/adra/pkg/regime"
)

const (
	RegimeID = "EU_DSA"

	ArtNoticeAction   = "Art 16"
	ArtStatementReach = "Art 17"
	ArtRiskAssess     = "Art 34"
	ArtRiskMitigate   = "Art 35"
)

var contentActions = map[string]bool{
	"POST_CONTENT":    true,
	"SHARE_CONTENT":   true,
	"PROMOTE_CONTENT": true,
	"LIVE_STREAM":     true,
}

// Spec returns the registry entry for the DSA regime.
func Spec() *regime.Spec {
	return &regime.Spec{
		ID:           RegimeID,
		Name:         "EU Digital Services Act",
		Domain:       "platform_safety",
		Framework:    "DSA",
		Kind:         regime.KindPlatformSafety,
		Jurisdiction: "EU",
		Enforceable:  true,
		L4Executable: true,
		Authority:    "European Commission",
		Applicable:   applicable,
		Resolve:      resolve,
	}
}

// Register installs the regime into the given registry.
func Register(r *regime.Registry) error {
	return r.Register(Spec())
}

func applicable(p regime.Payload) bool {
	if contentActions[regime.GetString(p, "action")] {
		return true
	}
	return regime.GetBool(regime.Meta(p), "is_vlop")
}

func resolve(p regime.Payload) ([]regime.Finding, error) {
	risk := regime.RiskIndicators(p)
	meta := regime.Meta(p)
	action := regime.GetString(p, "action")

	var findings []regime.Finding

	// Art 16 notice-and-action: flagged harmful/illegal content must not
	// be served. This is the transaction-scoped blocking duty.
	if regime.GetBool(risk, "harmful_content_flag") || regime.GetBool(risk, "illegal_content_flag") {
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  ArtNoticeAction,
			Category: "content_moderation",
			Status:   regime.StatusViolated,
			Severity: regime.SeverityHigh,
			Scope:    regime.ScopeTransaction,
			Evidence: map[string]any{
				"action":               action,
				"harmful_content_flag": regime.GetBool(risk, "harmful_content_flag"),
				"illegal_content_flag": regime.GetBool(risk, "illegal_content_flag"),
			},
			Remediation: "Remove or disable access to the flagged content and issue a " +
				"statement of reasons to the uploader.",
		})
	} else if contentActions[action] {
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  ArtNoticeAction,
			Category: "content_moderation",
			Status:   regime.StatusSatisfied,
			Severity: regime.SeverityLow,
			Scope:    regime.ScopeTransaction,
			Evidence: map[string]any{"action": action},
		})
	}

	// Art 34/35 systemic-risk duties bind VLOPs at audit scope; they are
	// tracked for remediation but never block an individual transaction.
	if regime.GetBool(meta, "is_vlop") {
		status := regime.StatusSatisfied
		severity := regime.SeverityLow
		if !regime.GetBool(meta, "risk_assessment_current") {
			status = regime.StatusViolated
			severity = regime.SeverityMedium
		}
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     ArtRiskAssess,
			Category:    "systemic_risk",
			Status:      status,
			Severity:    severity,
			Scope:       regime.ScopePlatformAudit,
			Evidence:    map[string]any{"risk_assessment_current": regime.GetBool(meta, "risk_assessment_current")},
			Remediation: "Complete the annual systemic risk assessment (Art 34).",
		})
	}

	return findings, nil
}
