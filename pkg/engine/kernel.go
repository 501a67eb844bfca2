package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/adra-labs/adra/pkg/artifact"
	"github.com/adra-labs/adra/pkg/authority"
	"github.com/adra-labs/adra/pkg/drift"
	"github.com/adra-labs/adra/pkg/regime"
	"github.com/adra-labs/adra/pkg/schema"
	"github.com/adra-labs/adra/pkg/scope"
	"github.com/adra-labs/adra/pkg/veto"
)

// Version is the evaluation kernel version recorded in every artifact.
const Version = "1.0.0"

// Suggester supplies a best-effort industry/profile suggestion when the
// payload does not identify itself. Its output carries no special trust.
type Suggester interface {
	Suggest(p regime.Payload) (industryID, profileID string, ok bool)
}

// Recorder receives decision telemetry.
type Recorder interface {
	RecordDecision(ctx context.Context, decision string, duration time.Duration)
}

// Kernel is the library-shaped evaluation entry point:
// Evaluate(payload) -> frozen Artifact.
type Kernel struct {
	registry  *regime.Registry
	resolver  *scope.Resolver
	validator *schema.Validator
	evaluator *Evaluator
	baselines drift.BaselineStore
	suggester Suggester
	recorder  Recorder
	signer    artifact.Signer
	logger    *slog.Logger
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithBaselines enables drift comparison against the given store.
func WithBaselines(s drift.BaselineStore) Option {
	return func(k *Kernel) { k.baselines = s }
}

// WithSuggester enables best-effort industry/profile detection.
func WithSuggester(s Suggester) Option {
	return func(k *Kernel) { k.suggester = s }
}

// WithRecorder enables decision telemetry.
func WithRecorder(r Recorder) Option {
	return func(k *Kernel) { k.recorder = r }
}

// WithSigner substitutes the integrity-token signing scheme.
func WithSigner(s artifact.Signer) Option {
	return func(k *Kernel) { k.signer = s }
}

// WithLogger overrides the kernel logger.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) {
		if l != nil {
			k.logger = l
		}
	}
}

// NewKernel wires the pipeline. The registry is injected, not hidden
// global state; populate it before constructing the kernel.
func NewKernel(reg *regime.Registry, resolver *scope.Resolver, opts ...Option) (*Kernel, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	k := &Kernel{
		registry:  reg,
		resolver:  resolver,
		validator: validator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(k)
	}
	k.evaluator = NewEvaluator(reg, k.logger)
	return k, nil
}

// Evaluate runs the full pipeline for one payload and returns the frozen
// artifact. Configuration errors (untrustworthy scope) surface alongside
// an explicit "could not evaluate" artifact — never a silent ALLOW.
func (k *Kernel) Evaluate(ctx context.Context, payload regime.Payload) (*artifact.Artifact, error) {
	start := time.Now()

	b := artifact.NewBuilder()
	if k.signer != nil {
		b = b.WithSigner(k.signer)
	}

	validation := k.validator.Validate(payload)
	if err := b.SetValidation(validation.Valid, validation.Errors); err != nil {
		return nil, err
	}
	if err := b.SetInput(payload); err != nil {
		return nil, err
	}

	industryID := regime.GetString(payload, "industry_id")
	profileID := regime.GetString(payload, "profile_id")
	if industryID == "" && profileID == "" && k.suggester != nil {
		if ind, prof, ok := k.suggester.Suggest(payload); ok {
			k.logger.Debug("using suggested scope identity",
				"industry_id", ind, "profile_id", prof)
			industryID, profileID = ind, prof
		}
	}

	sc, err := k.resolver.Resolve(payload, industryID, profileID)
	if err != nil {
		// Scope configuration cannot be trusted: record the failure in
		// the artifact and surface the typed error to the caller.
		if serr := b.SetUnevaluable("scope_resolution", err.Error()); serr != nil {
			return nil, serr
		}
		a, berr := b.Build()
		if berr != nil {
			return nil, berr
		}
		return a, err
	}

	findings := k.evaluator.Evaluate(payload, sc)
	verdict := authority.Adjudicate(findings, Version)
	vetoResult := veto.Derive(findings)

	if err := b.SetFindings(findings); err != nil {
		return nil, err
	}
	if err := b.SetLineage(&artifact.LineageSection{
		EngineVersion: Version,
		IndustryID:    sc.IndustryID,
		ProfileID:     sc.ProfileID,
		ProfileHash:   sc.ProfileHash,
		Jurisdiction:  sc.Jurisdiction,
		ScopeInferred: sc.Inferred,
		RegimeIDs:     sc.EnabledRegimes,
	}); err != nil {
		return nil, err
	}
	if err := b.SetVerdict(verdict); err != nil {
		return nil, err
	}
	if err := b.SetVeto(vetoResult); err != nil {
		return nil, err
	}
	if err := b.SetDrift(k.driftSection(ctx, payload, sc, verdict, findings)); err != nil {
		return nil, err
	}

	a, err := b.Build()
	if err != nil {
		return nil, err
	}

	if k.recorder != nil {
		k.recorder.RecordDecision(ctx, string(verdict.Decision), time.Since(start))
	}
	k.logger.Info("decision rendered",
		"artifact_id", a.ID,
		"decision", verdict.Decision,
		"profile_id", sc.ProfileID,
		"findings", len(findings),
		"blocking", verdict.Summary.Blocking,
	)
	return a, nil
}

// driftSection fingerprints the decision shape and, when a baseline store
// is configured, compares against the stored baseline. Baseline lookup
// failures degrade to NO_BASELINE; drift never alters the decision.
func (k *Kernel) driftSection(ctx context.Context, payload regime.Payload, sc *scope.Decision, verdict *authority.Verdict, findings []regime.Finding) *artifact.DriftSection {
	shape := decisionShape(payload, sc, verdict, findings)
	fp, err := drift.Fingerprint(shape)
	if err != nil {
		k.logger.Warn("drift fingerprint failed", "error", err)
		return &artifact.DriftSection{Outcome: drift.OutcomeNoBaseline}
	}

	section := &artifact.DriftSection{Fingerprint: fp, Outcome: drift.OutcomeNoBaseline}
	if k.baselines == nil {
		return section
	}

	key := sc.ProfileID + ":" + regime.GetString(payload, "action")
	baseline, err := k.baselines.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, drift.ErrNoBaseline) {
			k.logger.Warn("drift baseline lookup failed", "key", key, "error", err)
		}
		return section
	}
	section.Baseline = baseline
	section.Outcome = drift.Compare(fp, baseline)
	return section
}

// decisionShape is the stable projection of a decision used for drift
// comparison: outcome plus per-article statuses, no timestamps or ids.
func decisionShape(payload regime.Payload, sc *scope.Decision, verdict *authority.Verdict, findings []regime.Finding) map[string]any {
	trace := make([]map[string]any, 0, len(findings))
	for _, f := range findings {
		trace = append(trace, map[string]any{
			"regime_id": f.RegimeID,
			"article":   f.Article,
			"status":    f.Status,
			"severity":  f.Severity,
			"scope":     f.Scope,
		})
	}
	return map[string]any{
		"action":     regime.GetString(payload, "action"),
		"profile_id": sc.ProfileID,
		"decision":   verdict.Decision,
		"regime_ids": sc.EnabledRegimes,
		"trace":      trace,
	}
}
