// Package pci implements the PCI DSS regime: cardholder-data handling
// checks. PCI violations are audit-scoped contractual obligations, not
// transaction blockers, except for active PAN exposure in the request.
package pci

import (
	"github.com/adra-labs/adra/pkg/regime"
)

const (
	RegimeID = "PCI_DSS"

	ReqProtectStored = "Req 3"
	ReqEncryptTx     = "Req 4"
	ReqRestrict      = "Req 7"
)

// Spec returns the registry entry for the PCI DSS regime.
func Spec() *regime.Spec {
	return &regime.Spec{
		ID:           RegimeID,
		Name:         "Payment Card Industry Data Security Standard",
		Domain:       "payment_security",
		Framework:    "PCI_DSS_v4",
		Kind:         regime.KindPaymentSecurity,
		Jurisdiction: "GLOBAL",
		Enforceable:  true,
		L4Executable: false,
		Authority:    "PCI Security Standards Council",
		Applicable:   applicable,
		Resolve:      resolve,
	}
}

// Register installs the regime into the given registry.
func Register(r *regime.Registry) error {
	return r.Register(Spec())
}

func applicable(p regime.Payload) bool {
	return regime.GetMap(p, "payment") != nil
}

func resolve(p regime.Payload) ([]regime.Finding, error) {
	payment := regime.GetMap(p, "payment")

	var findings []regime.Finding

	// Req 3: raw PAN in the request payload is an immediate stop.
	if regime.GetBool(payment, "raw_pan_present") {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     ReqProtectStored,
			Category:    "cardholder_data",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityHigh,
			Scope:       regime.ScopeTransaction,
			Evidence:    map[string]any{"raw_pan_present": true},
			Remediation: "Tokenize the PAN; raw card numbers must not transit this path.",
		})
	} else {
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  ReqProtectStored,
			Category: "cardholder_data",
			Status:   regime.StatusSatisfied,
			Severity: regime.SeverityLow,
			Scope:    regime.ScopeTransaction,
		})
	}

	// Req 4: unencrypted transmission is an audit-scoped deficiency.
	if enc, ok := payment["encrypted_transport"]; ok {
		if b, _ := enc.(bool); !b {
			findings = append(findings, regime.Finding{
				RegimeID:    RegimeID,
				Article:     ReqEncryptTx,
				Category:    "transport",
				Status:      regime.StatusViolated,
				Severity:    regime.SeverityMedium,
				Scope:       regime.ScopePlatformAudit,
				Evidence:    map[string]any{"encrypted_transport": false},
				Remediation: "Enforce TLS for all cardholder data transmission.",
			})
		}
	}

	return findings, nil
}
