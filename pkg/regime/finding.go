// Package regime defines the pluggable regulatory evaluator contract:
// policy findings, regime specifications, and the process-wide registry
// that the evaluation kernel resolves regimes from.
package regime

// Status is the outcome of one regime's check against one rule/article.
type Status string

const (
	StatusViolated      Status = "VIOLATED"
	StatusSatisfied     Status = "SATISFIED"
	StatusNotApplicable Status = "NOT_APPLICABLE"
	StatusUnknown       Status = "UNKNOWN"
)

// Valid reports whether s is one of the four enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusViolated, StatusSatisfied, StatusNotApplicable, StatusUnknown:
		return true
	}
	return false
}

// Severity grades a finding. Ordering is fixed: LOW < MEDIUM < HIGH < CRITICAL.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Rank returns the numeric order of the severity (LOW=1 .. CRITICAL=4).
// An unknown severity ranks as LOW; absence of data is never escalated.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// ParseSeverity normalizes a raw severity value. Unrecognized or empty
// input defaults to LOW — missing metadata alone never raises severity.
func ParseSeverity(raw string) Severity {
	switch Severity(raw) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(raw)
	}
	switch raw {
	case "1":
		return SeverityLow
	case "2":
		return SeverityMedium
	case "3":
		return SeverityHigh
	case "4":
		return SeverityCritical
	}
	return SeverityLow
}

// EnforcementScope describes how narrowly a finding binds.
type EnforcementScope string

const (
	// ScopeTransaction findings can halt the requested action.
	ScopeTransaction EnforcementScope = "TRANSACTION"
	// ScopePlatformAudit findings feed periodic platform audits only.
	ScopePlatformAudit EnforcementScope = "PLATFORM_AUDIT"
	// ScopeOrganizational findings target org-level processes.
	ScopeOrganizational EnforcementScope = "ORGANIZATIONAL"
	// ScopeAdvisory findings are informational.
	ScopeAdvisory EnforcementScope = "ADVISORY"
)

// Finding is one regime's verdict on one rule or article.
type Finding struct {
	RegimeID    string           `json:"regime_id"`
	Article     string           `json:"article"`
	Category    string           `json:"category,omitempty"`
	Status      Status           `json:"status"`
	Severity    Severity         `json:"severity"`
	Scope       EnforcementScope `json:"enforcement_scope,omitempty"`
	Evidence    map[string]any   `json:"evidence,omitempty"`
	Remediation string           `json:"remediation,omitempty"`
}

// Blocking reports whether the finding alone forces a DENY.
//
// A finding blocks iff it is transaction-scoped (a missing scope defaults
// to transaction-scoped — fail closed on missing metadata), VIOLATED, and
// HIGH or CRITICAL. Both the constitutional authority and the veto engine
// derive from this one predicate, which is what keeps them coherent.
func (f Finding) Blocking() bool {
	if f.Scope != "" && f.Scope != ScopeTransaction {
		return false
	}
	return f.Status == StatusViolated && f.Severity.Rank() >= SeverityHigh.Rank()
}

// Normalize returns a copy with conservative defaults applied: an invalid
// or missing status becomes UNKNOWN (never SATISFIED), malformed severity
// becomes LOW, and regimeID fills an empty RegimeID.
func (f Finding) Normalize(regimeID string) Finding {
	out := f
	if out.RegimeID == "" {
		out.RegimeID = regimeID
	}
	if !out.Status.Valid() {
		out.Status = StatusUnknown
	}
	out.Severity = ParseSeverity(string(out.Severity))
	return out
}
