// Package mica implements the EU Markets in Crypto-Assets regime for
// crypto-asset service providers (CASPs).
package mica

import (
	"github.com/adra-labs/adra/pkg/regime"
)

const (
	RegimeID = "EU_MICA"

	ArtAuthorization = "Art 59"
	ArtWhitePaper    = "Art 6"
	ArtMarketAbuse   = "Art 89"
)

// Spec returns the registry entry for the MiCA regime.
func Spec() *regime.Spec {
	return &regime.Spec{
		ID:           RegimeID,
		Name:         "EU Markets in Crypto-Assets Regulation",
		Domain:       "financial_integrity",
		Framework:    "MiCA",
		Kind:         regime.KindFinancialIntegrity,
		Jurisdiction: "EU",
		Enforceable:  true,
		L4Executable: true,
		Authority:    "European Securities and Markets Authority",
		Applicable:   applicable,
		Resolve:      resolve,
	}
}

// Register installs the regime into the given registry.
func Register(r *regime.Registry) error {
	return r.Register(Spec())
}

func applicable(p regime.Payload) bool {
	return regime.GetMap(p, "crypto_asset") != nil
}

func resolve(p regime.Payload) ([]regime.Finding, error) {
	asset := regime.GetMap(p, "crypto_asset")

	var findings []regime.Finding

	// Art 59: operating as a CASP requires authorization.
	if !regime.GetBool(asset, "casp_authorized") {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     ArtAuthorization,
			Category:    "authorization",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityCritical,
			Scope:       regime.ScopeTransaction,
			Evidence:    map[string]any{"casp_authorized": false},
			Remediation: "Obtain CASP authorization from the home member state authority.",
		})
	} else {
		findings = append(findings, regime.Finding{
			RegimeID: RegimeID,
			Article:  ArtAuthorization,
			Category: "authorization",
			Status:   regime.StatusSatisfied,
			Severity: regime.SeverityLow,
			Scope:    regime.ScopeTransaction,
		})
	}

	// Art 6: public offerings need a published white paper.
	if regime.GetBool(asset, "public_offering") && !regime.GetBool(asset, "white_paper_published") {
		findings = append(findings, regime.Finding{
			RegimeID:    RegimeID,
			Article:     ArtWhitePaper,
			Category:    "disclosure",
			Status:      regime.StatusViolated,
			Severity:    regime.SeverityHigh,
			Scope:       regime.ScopeTransaction,
			Evidence:    map[string]any{"public_offering": true, "white_paper_published": false},
			Remediation: "Publish a crypto-asset white paper before the offering (Art 6).",
		})
	}

	return findings, nil
}
