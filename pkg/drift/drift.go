// Package drift provides the decision-shape fingerprinting primitive and
// pluggable baseline storage for comparing a decision against history.
//
// Fingerprint is pure: canonical serialization (sorted keys, fixed
// separators) hashed with SHA-256. Where baselines live and what digest
// divergence means policy-wise is the caller's concern.
package drift

import (
	"context"
	"errors"

	"github.com/adra-labs/adra/pkg/canonical"
)

// Outcome of a baseline comparison.
type Outcome string

const (
	OutcomeMatch      Outcome = "MATCH"
	OutcomeDrift      Outcome = "DRIFT"
	OutcomeNoBaseline Outcome = "NO_BASELINE"
)

// ErrNoBaseline is returned by stores when no baseline exists for a key.
var ErrNoBaseline = errors.New("drift: no baseline recorded")

// Fingerprint canonicalizes v and returns its digest.
func Fingerprint(v any) (string, error) {
	return canonical.Hash(v)
}

// Compare classifies a current digest against a baseline digest.
func Compare(current, baseline string) Outcome {
	switch {
	case baseline == "":
		return OutcomeNoBaseline
	case current == baseline:
		return OutcomeMatch
	default:
		return OutcomeDrift
	}
}

// BaselineStore persists historical fingerprints keyed by an arbitrary
// shape key (typically profile id + action).
type BaselineStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, digest string) error
}
