// Package artifact assembles the layered, hash-bound decision artifact
// (ADRA) and enforces its build-then-freeze lifecycle. Once finalized an
// artifact is immutable forever; every mutator funnels through the single
// immutability guard.
package artifact

import (
	"fmt"
	"time"

	"github.com/adra-labs/adra/pkg/authority"
	"github.com/adra-labs/adra/pkg/drift"
	"github.com/adra-labs/adra/pkg/regime"
	"github.com/adra-labs/adra/pkg/veto"
)

// ValidationSection records the structural pre-validation outcome.
type ValidationSection struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// InputSection is the tamper-evidence snapshot of the evaluated payload.
type InputSection struct {
	Snapshot map[string]any `json:"snapshot"`
	Hash     string         `json:"hash"`
}

// LineageSection records where the decision came from.
type LineageSection struct {
	EngineVersion string   `json:"engine_version"`
	IndustryID    string   `json:"industry_id,omitempty"`
	ProfileID     string   `json:"profile_id,omitempty"`
	ProfileHash   string   `json:"profile_hash,omitempty"`
	Jurisdiction  string   `json:"jurisdiction,omitempty"`
	ScopeInferred bool     `json:"scope_inferred,omitempty"`
	RegimeIDs     []string `json:"regime_ids"`
}

// DriftSection records the decision-shape fingerprint and, when a
// baseline was supplied, the comparison outcome.
type DriftSection struct {
	Fingerprint string        `json:"fingerprint"`
	Baseline    string        `json:"baseline,omitempty"`
	Outcome     drift.Outcome `json:"outcome"`
}

// UnevaluableSection is emitted when the pipeline could not resolve a
// trustworthy scope; the absence of evaluation is itself auditable.
type UnevaluableSection struct {
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// Token is the integrity binding (CET): a content hash over the decision
// substrate, a nonce, and a signature. The three-field contract allows a
// real signing scheme to be substituted without changing any caller.
type Token struct {
	ContentHash string `json:"content_hash"`
	Nonce       string `json:"nonce"`
	Signature   string `json:"signature"`
	Algorithm   string `json:"algorithm"`
}

// Artifact is the finalized audit record for one evaluation.
type Artifact struct {
	ID        string    `json:"artifact_id"`
	CreatedAt time.Time `json:"created_at"`

	Validation  *ValidationSection  `json:"validation,omitempty"`
	Input       *InputSection       `json:"input,omitempty"`
	Findings    []regime.Finding    `json:"findings,omitempty"`
	Lineage     *LineageSection     `json:"lineage,omitempty"`
	Verdict     *authority.Verdict  `json:"verdict,omitempty"`
	Veto        *veto.Result        `json:"veto,omitempty"`
	Drift       *DriftSection       `json:"drift,omitempty"`
	Unevaluable *UnevaluableSection `json:"unevaluable,omitempty"`
	Integrity   *Token              `json:"integrity,omitempty"`

	Finalized bool `json:"finalized"`
}

// ImmutabilityError reports a write attempt against a frozen artifact.
// It is always fatal and never swallowed.
type ImmutabilityError struct {
	ArtifactID string
	Section    string
}

func (e *ImmutabilityError) Error() string {
	return fmt.Sprintf("artifact %s is finalized: write to section %q rejected",
		e.ArtifactID, e.Section)
}

// assertMutable is the single enforcement point for the append-only
// guarantee. Every mutator calls it before writing.
func (a *Artifact) assertMutable(section string) error {
	if a.Finalized {
		return &ImmutabilityError{ArtifactID: a.ID, Section: section}
	}
	return nil
}
