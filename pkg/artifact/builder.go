package artifact

import (
	"time"

	"github.com/google/uuid"

	"github.com/adra-labs/adra/pkg/authority"
	"github.com/adra-labs/adra/pkg/canonical"
	"github.com/adra-labs/adra/pkg/regime"
	"github.com/adra-labs/adra/pkg/veto"
)

// Builder assembles an artifact section by section, then freezes it.
// After Build succeeds every further setter fails with ImmutabilityError.
type Builder struct {
	a      *Artifact
	signer Signer
}

// NewBuilder starts a fresh artifact with a random id.
func NewBuilder() *Builder {
	return &Builder{
		a: &Artifact{
			ID:        uuid.New().String(),
			CreatedAt: time.Now().UTC(),
		},
		signer: defaultSigner{},
	}
}

// WithSigner substitutes a real signing scheme for the integrity token.
func (b *Builder) WithSigner(s Signer) *Builder {
	if s != nil {
		b.signer = s
	}
	return b
}

// SetValidation records the structural pre-validation outcome.
func (b *Builder) SetValidation(valid bool, errs []string) error {
	if err := b.a.assertMutable("validation"); err != nil {
		return err
	}
	b.a.Validation = &ValidationSection{Valid: valid, Errors: errs}
	return nil
}

// SetInput snapshots the payload and binds its canonical hash. The
// snapshot is a deep copy; mutating the payload afterwards cannot reach
// the artifact.
func (b *Builder) SetInput(payload map[string]any) error {
	if err := b.a.assertMutable("input"); err != nil {
		return err
	}
	hash, err := canonical.Hash(payload)
	if err != nil {
		return err
	}
	b.a.Input = &InputSection{Snapshot: snapshotMap(payload), Hash: hash}
	return nil
}

func snapshotMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = snapshotValue(v)
	}
	return out
}

func snapshotValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return snapshotMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = snapshotValue(e)
		}
		return out
	default:
		return v
	}
}

// SetFindings records the ordered finding trace.
func (b *Builder) SetFindings(findings []regime.Finding) error {
	if err := b.a.assertMutable("findings"); err != nil {
		return err
	}
	b.a.Findings = findings
	return nil
}

// SetLineage records the policy lineage.
func (b *Builder) SetLineage(l *LineageSection) error {
	if err := b.a.assertMutable("lineage"); err != nil {
		return err
	}
	b.a.Lineage = l
	return nil
}

// SetVerdict records the constitutional verdict.
func (b *Builder) SetVerdict(v *authority.Verdict) error {
	if err := b.a.assertMutable("verdict"); err != nil {
		return err
	}
	b.a.Verdict = v
	return nil
}

// SetVeto records the execution-authorization result.
func (b *Builder) SetVeto(r *veto.Result) error {
	if err := b.a.assertMutable("veto"); err != nil {
		return err
	}
	b.a.Veto = r
	return nil
}

// SetDrift records the drift fingerprint and comparison outcome.
func (b *Builder) SetDrift(d *DriftSection) error {
	if err := b.a.assertMutable("drift"); err != nil {
		return err
	}
	b.a.Drift = d
	return nil
}

// SetUnevaluable records that the pipeline could not evaluate at all.
func (b *Builder) SetUnevaluable(stage, reason string) error {
	if err := b.a.assertMutable("unevaluable"); err != nil {
		return err
	}
	b.a.Unevaluable = &UnevaluableSection{Stage: stage, Reason: reason}
	return nil
}

// Build computes the integrity token, freezes the artifact, and returns
// it. The builder cannot mutate the artifact afterwards.
func (b *Builder) Build() (*Artifact, error) {
	if err := b.a.assertMutable("integrity"); err != nil {
		return nil, err
	}

	token, err := computeToken(b.a, b.signer)
	if err != nil {
		return nil, err
	}
	b.a.Integrity = token
	b.a.Finalized = true
	return b.a, nil
}
