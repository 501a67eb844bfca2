// Package authority implements the constitutional adjudication stage: a
// pure aggregation function turning the policy-finding list into one
// ALLOW/DENY verdict under the conservative blocking policy.
package authority

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/adra-labs/adra/pkg/regime"
)

// Decision is the single rendered outcome.
type Decision string

const (
	Allow Decision = "ALLOW"
	Deny  Decision = "DENY"
)

// Summary counts findings by status.
type Summary struct {
	Total         int `json:"total"`
	Violated      int `json:"violated"`
	Satisfied     int `json:"satisfied"`
	NotApplicable int `json:"not_applicable"`
	Unknown       int `json:"unknown"`
	Blocking      int `json:"blocking"`
}

// Verdict is the authority's output. Computed once per request; never
// revised except by re-running the whole pipeline.
type Verdict struct {
	Decision               Decision        `json:"decision"`
	Severity               regime.Severity `json:"severity"`
	HumanOversightRequired bool            `json:"human_oversight_required"`
	SafeStateTriggered     bool            `json:"safe_state_triggered"`
	Rationale              string          `json:"rationale"`
	Because                []string        `json:"because"`
	NextActions            []string        `json:"next_actions"`
	Summary                Summary         `json:"summary"`
	EngineVersion          string          `json:"engine_version"`
}

// maxBecause bounds the narrative list.
const maxBecause = 5

// Adjudicate renders the verdict for a finding list. Pure: same findings
// and version always yield the same verdict.
func Adjudicate(findings []regime.Finding, engineVersion string) *Verdict {
	v := &Verdict{
		Decision:      Allow,
		Severity:      regime.SeverityLow,
		EngineVersion: normalizeVersion(engineVersion),
	}

	maxOverall := 0
	maxViolated := 0
	var violated, satisfied []regime.Finding

	for i := range findings {
		f := findings[i]
		v.Summary.Total++
		switch f.Status {
		case regime.StatusViolated:
			v.Summary.Violated++
			violated = append(violated, f)
			if r := f.Severity.Rank(); r > maxViolated {
				maxViolated = r
			}
		case regime.StatusSatisfied:
			v.Summary.Satisfied++
			satisfied = append(satisfied, f)
		case regime.StatusNotApplicable:
			v.Summary.NotApplicable++
		default:
			v.Summary.Unknown++
		}
		if r := f.Severity.Rank(); r > maxOverall {
			maxOverall = r
		}
		if f.Blocking() {
			v.Summary.Blocking++
		}
	}

	if v.Summary.Blocking > 0 {
		v.Decision = Deny
	}
	v.SafeStateTriggered = v.Decision == Deny
	v.HumanOversightRequired = v.Summary.Violated > 0 || v.Decision == Deny

	switch {
	case maxViolated > 0:
		v.Severity = rankSeverity(maxViolated)
	case maxOverall > 0:
		v.Severity = rankSeverity(maxOverall)
	}

	v.Because = buildBecause(violated, satisfied)
	v.NextActions = nextActions(v)
	v.Rationale = rationale(v)
	return v
}

func rankSeverity(rank int) regime.Severity {
	switch rank {
	case 4:
		return regime.SeverityCritical
	case 3:
		return regime.SeverityHigh
	case 2:
		return regime.SeverityMedium
	default:
		return regime.SeverityLow
	}
}

// buildBecause cites the highest-priority offending findings or, when
// nothing is violated, the satisfied ones. Ordering is deterministic:
// severity descending, then original finding order.
func buildBecause(violated, satisfied []regime.Finding) []string {
	source := violated
	if len(source) == 0 {
		source = satisfied
	}

	sort.SliceStable(source, func(i, j int) bool {
		return source[i].Severity.Rank() > source[j].Severity.Rank()
	})

	out := make([]string, 0, maxBecause)
	for _, f := range source {
		if len(out) == maxBecause {
			break
		}
		out = append(out, fmt.Sprintf("%s %s: %s %s (%s scope)",
			f.RegimeID, f.Article, f.Severity, f.Status, scopeLabel(f.Scope)))
	}
	return out
}

func scopeLabel(s regime.EnforcementScope) regime.EnforcementScope {
	if s == "" {
		return regime.ScopeTransaction
	}
	return s
}

// nextActions returns the decision-appropriate recommendation list.
// Deterministic defaults per outcome; never empty.
func nextActions(v *Verdict) []string {
	switch {
	case v.Decision == Deny:
		return []string{
			"Halt the requested action; execution is not authorized.",
			"Escalate to the designated compliance authority.",
			"Remediate the cited blocking violations before resubmission.",
		}
	case v.Summary.Violated > 0:
		return []string{
			"Proceed with the requested action.",
			"Schedule remediation of the non-blocking violations.",
			"Route the decision record for human review.",
		}
	default:
		return []string{
			"Proceed with the requested action.",
			"No remediation required.",
		}
	}
}

func rationale(v *Verdict) string {
	if v.Decision == Deny {
		return fmt.Sprintf(
			"%d blocking violation(s) at severity %s forced a conservative DENY; safe state engaged.",
			v.Summary.Blocking, v.Severity)
	}
	if v.Summary.Violated > 0 {
		return fmt.Sprintf(
			"%d violation(s) found, none transaction-blocking; ALLOW with human oversight required.",
			v.Summary.Violated)
	}
	return "No violations across the evaluated regimes; ALLOW."
}

// normalizeVersion validates the engine version as semver and returns its
// canonical form. A non-semver version is recorded verbatim.
func normalizeVersion(raw string) string {
	if raw == "" {
		return "0.0.0"
	}
	if ver, err := semver.NewVersion(raw); err == nil {
		return ver.String()
	}
	return raw
}
