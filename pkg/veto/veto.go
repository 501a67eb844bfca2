// Package veto derives the execution-authorization artifact from the
// policy-finding list. It never reads the verdict: the veto state is an
// unconditional second pure function of the same findings, which is what
// makes the cross-layer coherence check meaningful rather than circular.
package veto

import (
	"fmt"

	"github.com/adra-labs/adra/pkg/regime"
)

// Basis is one blocking finding annotated with its citation.
type Basis struct {
	Finding     regime.Finding `json:"finding"`
	Citation    string         `json:"citation"`
	Explanation string         `json:"explanation"`
}

// Gates mirrors the two authorization booleans as explicit decision gates.
type Gates struct {
	ExecutionGateOpen bool `json:"execution_gate_open"`
	VetoGateClosed    bool `json:"veto_gate_closed"`
}

// Result is the veto engine's output.
type Result struct {
	ExecutionAuthorized bool    `json:"execution_authorized"`
	VetoPathTriggered   bool    `json:"veto_path_triggered"`
	Category            string  `json:"category,omitempty"`
	Basis               []Basis `json:"basis,omitempty"`
	EscalationRequired  bool    `json:"escalation_required"`
	Gates               Gates   `json:"gates"`
}

// DeriveBasis selects exactly the blocking findings, preserving order,
// each annotated with a fixed citation template and a deterministic
// one-line explanation.
func DeriveBasis(findings []regime.Finding) []Basis {
	var basis []Basis
	for i := range findings {
		f := findings[i]
		if !f.Blocking() {
			continue
		}
		basis = append(basis, Basis{
			Finding: f,
			Citation: fmt.Sprintf("%s %s — %s violation under %s enforcement",
				f.RegimeID, f.Article, f.Severity, effectiveScope(f.Scope)),
			Explanation: fmt.Sprintf(
				"Article %s is violated at severity %s; execution of the requested action is vetoed.",
				f.Article, f.Severity),
		})
	}
	return basis
}

// Apply turns a veto basis into the authorization result.
func Apply(basis []Basis) *Result {
	triggered := len(basis) > 0
	r := &Result{
		ExecutionAuthorized: !triggered,
		VetoPathTriggered:   triggered,
		Basis:               basis,
		EscalationRequired:  triggered,
		Gates: Gates{
			ExecutionGateOpen: !triggered,
			VetoGateClosed:    triggered,
		},
	}
	if triggered {
		r.Category = category(basis)
	}
	return r
}

// Derive is the composed convenience form.
func Derive(findings []regime.Finding) *Result {
	return Apply(DeriveBasis(findings))
}

func category(basis []Basis) string {
	for _, b := range basis {
		if b.Finding.Severity == regime.SeverityCritical {
			return "CRITICAL_VIOLATION"
		}
	}
	return "HIGH_SEVERITY_VIOLATION"
}

func effectiveScope(s regime.EnforcementScope) regime.EnforcementScope {
	if s == "" {
		return regime.ScopeTransaction
	}
	return s
}
