// Package engine runs the policy evaluation pipeline: it executes every
// enabled, applicable regime against the payload, normalizes the outputs
// into one ordered finding list, and drives adjudication, veto derivation,
// and artifact assembly.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/adra-labs/adra/pkg/regime"
	"github.com/adra-labs/adra/pkg/scope"
)

// Evaluator runs regimes against payloads.
type Evaluator struct {
	registry *regime.Registry
	logger   *slog.Logger
}

// NewEvaluator creates an evaluator over the given registry.
func NewEvaluator(reg *regime.Registry, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{registry: reg, logger: logger}
}

// Evaluate produces the flat finding list for a resolved scope. Findings
// appear in registry order across regimes and in resolver order within a
// regime; for the same payload and scope the sequence is reproducible.
//
// A resolver that fails or panics contributes a single conservative
// UNKNOWN placeholder finding with the error captured as evidence, and
// evaluation of the remaining regimes continues.
func (e *Evaluator) Evaluate(p regime.Payload, sc *scope.Decision) []regime.Finding {
	ordered := e.registry.Sort(sc.EnabledRegimes)

	var findings []regime.Finding
	for _, id := range ordered {
		spec, ok := e.registry.Get(id)
		if !ok {
			continue
		}
		findings = append(findings, e.evaluateRegime(spec, p)...)
	}
	return findings
}

func (e *Evaluator) evaluateRegime(spec *regime.Spec, p regime.Payload) []regime.Finding {
	applicable, err := e.checkApplicable(spec, p)
	if err != nil {
		e.logger.Warn("regime applicability check failed",
			"regime_id", spec.ID, "error", err)
		return []regime.Finding{placeholder(spec.ID, err)}
	}
	if !applicable {
		return nil
	}

	resolved, err := e.runResolver(spec, p)
	if err != nil {
		e.logger.Warn("regime resolver failed, isolating",
			"regime_id", spec.ID, "error", err)
		return []regime.Finding{placeholder(spec.ID, err)}
	}

	out := make([]regime.Finding, 0, len(resolved))
	for _, f := range resolved {
		out = append(out, f.Normalize(spec.ID))
	}
	return out
}

// checkApplicable shields the pipeline from a panicking predicate.
func (e *Evaluator) checkApplicable(spec *regime.Spec, p regime.Payload) (applicable bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("applicable panicked: %v", r)
		}
	}()
	return spec.Applicable(p), nil
}

// runResolver shields the pipeline from a panicking resolver.
func (e *Evaluator) runResolver(spec *regime.Spec, p regime.Payload) (findings []regime.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("resolver panicked: %v", r)
		}
	}()
	return spec.Resolve(p)
}

// placeholder is the conservative stand-in for a regime that could not be
// evaluated: UNKNOWN, never SATISFIED, error preserved as evidence.
func placeholder(regimeID string, err error) regime.Finding {
	return regime.Finding{
		RegimeID: regimeID,
		Article:  "EVALUATION",
		Category: "evaluation_failure",
		Status:   regime.StatusUnknown,
		Severity: regime.SeverityLow,
		Scope:    regime.ScopeAdvisory,
		Evidence: map[string]any{"error": err.Error()},
	}
}
