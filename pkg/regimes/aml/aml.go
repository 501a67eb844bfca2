// Package aml implements the AML/CFT (anti-money-laundering, counter
// terrorist financing) regime following the FATF recommendations.
package aml

import (
	"github.com/adra-labs/adra/pkg/regime"
)

const (
	RegimeID = "AML_CFT"

	RecCDD           = "R.10" // customer due diligence
	RecSanctions     = "R.6"  // targeted financial sanctions
	RecSuspicious    = "R.20" // suspicious transaction reporting
	RecRecordkeeping = "R.11"
)

var financialActions = map[string]bool{
	"TRANSFER":   true,
	"PAYOUT":     true,
	"WITHDRAWAL": true,
	"DEPOSIT":    true,
	"EXCHANGE":   true,
}

// Spec returns the registry entry for the AML/CFT regime.
func Spec() *regime.Spec {
	return &regime.Spec{
		ID:           RegimeID,
		Name:         "Anti-Money-Laundering / CFT",
		Domain:       "financial_integrity",
		Framework:    "FATF",
		Kind:         regime.KindFinancialIntegrity,
		Jurisdiction: "GLOBAL",
		Enforceable:  true,
		L4Executable: true,
		Authority:    "Financial Action Task Force",
		Applicable:   applicable,
		Resolve:      resolve,
	}
}

// Register installs the regime into the given registry.
func Register(r *regime.Registry) error {
	return r.Register(Spec())
}

func applicable(p regime.Payload) bool {
	return financialActions[regime.GetString(p, "action")]
}

func resolve(p regime.Payload) ([]regime.Finding, error) {
	risk := regime.RiskIndicators(p)
	customer := regime.GetMap(p, "customer")

	var findings []regime.Finding

	// R.6 sanctions screening: a confirmed hit is an absolute stop.
	if regime.GetBool(risk, "sanctions_hit") {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     RecSanctions,
			Category:    "sanctions",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityCritical,
			Scope:       regime.ScopeTransaction,
			Evidence:    map[string]any{"sanctions_hit": true},
			Remediation: "Freeze the transaction and file with the competent authority.",
		})
	} else {
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  RecSanctions,
			Category: "sanctions",
			Status:   regime.StatusSatisfied,
			Severity: regime.SeverityLow,
			Scope:    regime.ScopeTransaction,
		})
	}

	// R.10 customer due diligence.
	if customer != nil {
		if !regime.GetBool(customer, "kyc_verified") {
			findings = append(findings, regime.Finding{
				RegimeID:    RegimeID,
				Article:     RecCDD,
				Category:    "due_diligence",
				Status:      regime.StatusViolated,
				Severity:    regime.SeverityHigh,
				Scope:       regime.ScopeTransaction,
				Evidence:    map[string]any{"kyc_verified": false},
				Remediation: "Complete customer due diligence before executing the transaction.",
			})
		} else {
			findings = append(findings, regime.Finding{
				RegimeID: RegimeID,
				Article:  RecCDD,
				Category: "due_diligence",
				Status:   regime.StatusSatisfied,
				Severity: regime.SeverityLow,
				Scope:    regime.ScopeTransaction,
			})
		}
	} else {
		// No customer section: due diligence cannot be assessed.
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  RecCDD,
			Category: "due_diligence",
			Status:   regime.StatusUnknown,
			Severity: regime.SeverityLow,
			Scope:    regime.ScopeTransaction,
			Evidence: map[string]any{"customer": "absent"},
		})
	}

	// R.20 structuring / suspicious pattern reporting duty.
	if regime.GetBool(risk, "structuring_pattern") {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     RecSuspicious,
			Category:    "suspicious_activity",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityMedium,
			Scope:       regime.ScopeOrganizational,
			Evidence:    map[string]any{"structuring_pattern": true},
			Remediation: "File a suspicious transaction report.",
		})
	}

	return findings, nil
}
