// Package gdpr implements the EU GDPR (General Data Protection Regulation)
// regime: data-protection checks over personal-data processing indicators.
package gdpr

import (
	"github.com/adra-labs/adra/pkg/regime"
)

const (
	RegimeID = "EU_GDPR"

	ArtLawfulness   = "Art 5(1)(a)"
	ArtPurposeLimit = "Art 5(1)(b)"
	ArtLawfulBasis  = "Art 6"
	ArtSpecialData  = "Art 9"
	ArtSecurity     = "Art 32"
	ArtCrossBorder  = "Art 44"
)

// Spec returns the registry entry for the GDPR regime.
func Spec() *regime.Spec {
	return &regime.Spec{
		ID:           RegimeID,
		Name:         "EU General Data Protection Regulation",
		Domain:       "data_protection",
		Framework:    "GDPR",
		Kind:         regime.KindDataProtection,
		Jurisdiction: "EU",
		Enforceable:  true,
		L4Executable: true,
		Authority:    "European Data Protection Board",
		Applicable:   applicable,
		Resolve:      resolve,
	}
}

// Register installs the regime into the given registry.
func Register(r *regime.Registry) error {
	return r.Register(Spec())
}

func applicable(p regime.Payload) bool {
	// GDPR applies whenever personal data is in play or the payload sits
	// under EU jurisdiction.
	if regime.GetMap(p, "personal_data") != nil {
		return true
	}
	return regime.GetString(regime.Meta(p), "jurisdiction") == "EU"
}

func resolve(p regime.Payload) ([]regime.Finding, error) {
	personal := regime.GetMap(p, "personal_data")
	risk := regime.RiskIndicators(p)

	var findings []regime.Finding

	// Art 6 lawful basis: processing personal data without a declared basis.
	if personal != nil {
		if basis := regime.GetString(personal, "lawful_basis"); basis == "" {
			findings = append(findings, regime.Finding{
				RegimeID: RegimeID,
				Article:  ArtLawfulBasis,
				Category: "lawful_basis",
				Status:   regime.StatusViolated,
				Severity: regime.SeverityHigh,
				Scope:    regime.ScopeTransaction,
				Evidence: map[string]any{"lawful_basis": "absent"},
				Remediation: "Declare an Article 6 lawful basis before processing " +
					"personal data.",
			})
		} else {
			findings = append(findings, regime.Finding{
				RegimeID: RegimeID,
				Article:  ArtLawfulBasis,
				Category: "lawful_basis",
				Status:   regime.StatusSatisfied,
				Severity: regime.SeverityLow,
				Scope:    regime.ScopeTransaction,
				Evidence: map[string]any{"lawful_basis": basis},
			})
		}

		// Art 9 special categories require explicit consent.
		if regime.GetBool(personal, "special_categories") &&
			regime.GetString(personal, "lawful_basis") != "CONSENT" {
			findings = append(findings, regime.Finding{
				RegimeID:    RegimeID,
				Article:     ArtSpecialData,
				Category:    "special_categories",
				Status:      regime.StatusViolated,
				Severity:    regime.SeverityCritical,
				Scope:       regime.ScopeTransaction,
				Evidence:    map[string]any{"special_categories": true},
				Remediation: "Special-category data requires explicit consent (Art 9(2)(a)).",
			})
		}

		// Art 44 cross-border transfer needs a transfer basis.
		if regime.GetBool(personal, "cross_border_transfer") {
			status := regime.StatusSatisfied
			severity := regime.SeverityLow
			if regime.GetString(personal, "transfer_basis") == "" {
				status = regime.StatusViolated
				severity = regime.SeverityHigh
			}
			findings = append(findings, regime.Finding{
				RegimeID: RegimeID,
				Article:  ArtCrossBorder,
				Category: "cross_border",
				Status:   status,
				Severity: severity,
				Scope:    regime.ScopeTransaction,
				Evidence: map[string]any{
					"cross_border_transfer": true,
					"transfer_basis":        regime.GetString(personal, "transfer_basis"),
				},
				Remediation: "Establish SCCs, adequacy, or BCRs for third-country transfers.",
			})
		}
	} else {
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  ArtLawfulness,
			Category: "processing",
			Status:   regime.StatusNotApplicable,
			Severity: regime.SeverityLow,
			Scope:    regime.ScopeTransaction,
			Evidence: map[string]any{"personal_data": "absent"},
		})
	}

	// Art 32 security-of-processing: a reported breach indicator is an
	// organizational obligation, tracked but never transaction-blocking.
	if regime.GetBool(risk, "data_breach_reported") {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     ArtSecurity,
			Category:    "security",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityHigh,
			Scope:       regime.ScopeOrganizational,
			Evidence:    map[string]any{"data_breach_reported": true},
			Remediation: "Notify the supervisory authority within 72 hours (Art 33).",
		})
	}

	return findings, nil
}
