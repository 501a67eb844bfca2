// Package txnintegrity implements the transaction-integrity regime:
// fraud and abuse checks over commerce transactions. The legacy
// "TXN_INTEGRITY" identifier canonicalizes to "TRANSACTION_INTEGRITY".
package txnintegrity

import (
	"github.com/adra-labs/adra/pkg/regime"
)

const (
	RegimeID = "TRANSACTION_INTEGRITY"

	RuleFraudSignal   = "TI-1"
	RuleRepeatOffense = "TI-2"
	RuleVelocity      = "TI-3"
)

var transactionActions = map[string]bool{
	"PURCHASE":       true,
	"REFUND_REQUEST": true,
	"CHARGEBACK":     true,
	"PAYOUT":         true,
	"TRANSFER":       true,
}

// Spec returns the registry entry for the transaction-integrity regime.
func Spec() *regime.Spec {
	return &regime.Spec{
		ID:           RegimeID,
		Name:         "Transaction Integrity & Anti-Fraud",
		Domain:       "financial_integrity",
		Framework:    "TRANSACTION_INTEGRITY",
		Kind:         regime.KindFinancialIntegrity,
		Jurisdiction: "GLOBAL",
		Enforceable:  true,
		L4Executable: true,
		Authority:    "Platform Trust & Safety",
		Applicable:   applicable,
		Resolve:      resolve,
	}
}

// Register installs the regime into the given registry.
func Register(r *regime.Registry) error {
	return r.Register(Spec())
}

func applicable(p regime.Payload) bool {
	if transactionActions[regime.GetString(p, "action")] {
		return true
	}
	risk := regime.RiskIndicators(p)
	return regime.GetBool(risk, "fraud_suspected")
}

func resolve(p regime.Payload) ([]regime.Finding, error) {
	risk := regime.RiskIndicators(p)
	action := regime.GetString(p, "action")

	var findings []regime.Finding

	if regime.GetBool(risk, "fraud_suspected") {
		severity := regime.SeverityHigh
		prior, _ := regime.GetNumber(risk, "previous_violations")
		if prior >= 1 {
			// A repeat offender with an active fraud signal is critical.
			severity = regime.SeverityCritical
		}
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  RuleFraudSignal,
			Category: "fraud",
			Status:   regime.StatusViolated,
			Severity: severity,
			Scope:    regime.ScopeTransaction,
			Evidence: map[string]any{
				"action":              action,
				"fraud_suspected":     true,
				"previous_violations": prior,
			},
			Remediation: "Hold the transaction and route to manual fraud review.",
		})
	} else {
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  RuleFraudSignal,
			Category: "fraud",
			Status:   regime.StatusSatisfied,
			Severity: regime.SeverityLow,
			Scope:    regime.ScopeTransaction,
			Evidence: map[string]any{"action": action},
		})
	}

	if prior, ok := regime.GetNumber(risk, "previous_violations"); ok && prior >= 3 {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     RuleRepeatOffense,
			Category:    "repeat_offense",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityMedium,
			Scope:       regime.ScopePlatformAudit,
			Evidence:    map[string]any{"previous_violations": prior},
			Remediation: "Review account standing; repeated violations warrant restriction.",
		})
	}

	if regime.GetBool(risk, "velocity_anomaly") {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     RuleVelocity,
			Category:    "velocity",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityMedium,
			Scope:       regime.ScopeTransaction,
			Evidence:    map[string]any{"velocity_anomaly": true},
			Remediation: "Apply step-up verification before further transactions.",
		})
	}

	return findings, nil
}
