// Package custom implements the PROFILE_CUSTOM regime: profile-declared
// compliance rules expressed as CEL predicates over the payload.
//
// Each rule's expression states a requirement; evaluating to true means
// the requirement holds (SATISFIED), false means VIOLATED. Evaluation is
// fail-closed: a rule that cannot be compiled or evaluated yields an
// UNKNOWN finding with the error captured as evidence, never SATISFIED.
package custom

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/adra-labs/adra/pkg/regime"
)

const RegimeID = "PROFILE_CUSTOM"

// Rule is one profile-declared CEL rule.
type Rule struct {
	ID          string
	Expr        string
	Category    string
	Severity    regime.Severity
	Scope       regime.EnforcementScope
	Remediation string
}

// RuleSource supplies the rules declared by a profile.
type RuleSource interface {
	RulesFor(profileID string) []Rule
}

// Evaluator compiles and caches CEL programs for profile rules.
type Evaluator struct {
	env   *cel.Env
	mu    sync.RWMutex
	cache map[string]cel.Program
	src   RuleSource
}

// NewEvaluator creates a CEL evaluator over the given rule source.
func NewEvaluator(src RuleSource) (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("payload", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("custom: cel environment: %w", err)
	}
	return &Evaluator{
		env:   env,
		cache: make(map[string]cel.Program),
		src:   src,
	}, nil
}

// Spec returns the registry entry for the profile-custom regime.
func (e *Evaluator) Spec() *regime.Spec {
	return &regime.Spec{
		ID:           RegimeID,
		Name:         "Profile-Declared Custom Rules",
		Domain:       "custom",
		Framework:    "CEL",
		Kind:         regime.KindCustom,
		Jurisdiction: "GLOBAL",
		Enforceable:  true,
		L4Executable: true,
		Authority:    "Deploying Organization",
		Applicable:   e.applicable,
		Resolve:      e.resolve,
	}
}

// Register installs the regime into the given registry.
func (e *Evaluator) Register(r *regime.Registry) error {
	return r.Register(e.Spec())
}

func (e *Evaluator) applicable(p regime.Payload) bool {
	if e.src == nil {
		return false
	}
	return len(e.src.RulesFor(regime.GetString(p, "profile_id"))) > 0
}

func (e *Evaluator) resolve(p regime.Payload) ([]regime.Finding, error) {
	rules := e.src.RulesFor(regime.GetString(p, "profile_id"))

	findings := make([]regime.Finding, 0, len(rules))
	for _, rule := range rules {
		findings = append(findings, e.evaluateRule(rule, p))
	}
	return findings, nil
}

func (e *Evaluator) evaluateRule(rule Rule, p regime.Payload) regime.Finding {
	f := regime.Finding{
		RegimeID:    RegimeID,
		Article:     rule.ID,
		Category:    rule.Category,
		Severity:    regime.ParseSeverity(string(rule.Severity)),
		Scope:       rule.Scope,
		Remediation: rule.Remediation,
	}

	prg, err := e.program(rule)
	if err != nil {
		f.Status = regime.StatusUnknown
		f.Evidence = map[string]any{"error": err.Error(), "expr": rule.Expr}
		return f
	}

	out, _, err := prg.Eval(map[string]any{"payload": map[string]any(p)})
	if err != nil {
		f.Status = regime.StatusUnknown
		f.Evidence = map[string]any{"error": err.Error(), "expr": rule.Expr}
		return f
	}

	ok, isBool := out.Value().(bool)
	if !isBool {
		f.Status = regime.StatusUnknown
		f.Evidence = map[string]any{"error": "expression did not yield a boolean", "expr": rule.Expr}
		return f
	}

	if ok {
		f.Status = regime.StatusSatisfied
	} else {
		f.Status = regime.StatusViolated
	}
	f.Evidence = map[string]any{"expr": rule.Expr}
	return f
}

func (e *Evaluator) program(rule Rule) (cel.Program, error) {
	e.mu.RLock()
	prg, ok := e.cache[rule.Expr]
	e.mu.RUnlock()
	if ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(rule.Expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("custom: compile rule %q: %w", rule.ID, issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("custom: program rule %q: %w", rule.ID, err)
	}

	e.mu.Lock()
	e.cache[rule.Expr] = prg
	e.mu.Unlock()
	return prg, nil
}
