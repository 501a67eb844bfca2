package drift

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStable(t *testing.T) {
	shape := map[string]any{
		"decision": "ALLOW",
		"trace":    []any{map[string]any{"article": "Art 6", "status": "SATISFIED"}},
	}
	fp1, err := Fingerprint(shape)
	require.NoError(t, err)
	fp2, err := Fingerprint(shape)
	require.NoError(t, err)
	require.Equal(t, fp1, fp2)
}

func TestFingerprintSensitiveToStatus(t *testing.T) {
	fp1, err := Fingerprint(map[string]any{"decision": "ALLOW"})
	require.NoError(t, err)
	fp2, err := Fingerprint(map[string]any{"decision": "DENY"})
	require.NoError(t, err)
	require.NotEqual(t, fp1, fp2)
}

func TestCompare(t *testing.T) {
	require.Equal(t, OutcomeNoBaseline, Compare("sha256:aa", ""))
	require.Equal(t, OutcomeMatch, Compare("sha256:aa", "sha256:aa"))
	require.Equal(t, OutcomeDrift, Compare("sha256:aa", "sha256:bb"))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNoBaseline)

	require.NoError(t, s.Put(ctx, "k", "sha256:aa"))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "sha256:aa", got)

	require.NoError(t, s.Put(ctx, "k", "sha256:bb"))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "sha256:bb", got)
}

func genShape() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("ALLOW", "DENY"),
		gen.SliceOf(gopter.CombineGens(
			gen.OneConstOf("EU_GDPR", "EU_DSA", "TRANSACTION_INTEGRITY"),
			gen.OneConstOf("VIOLATED", "SATISFIED", "NOT_APPLICABLE", "UNKNOWN"),
		).Map(func(vals []interface{}) map[string]any {
			return map[string]any{"regime_id": vals[0], "status": vals[1]}
		})),
	).Map(func(vals []interface{}) map[string]any {
		return map[string]any{
			"decision": vals[0],
			"trace":    vals[1],
		}
	})
}

func TestFingerprintProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("same shape, same digest", prop.ForAll(
		func(shape map[string]any) bool {
			fp1, err1 := Fingerprint(shape)
			fp2, err2 := Fingerprint(shape)
			return err1 == nil && err2 == nil && fp1 == fp2
		},
		genShape(),
	))

	properties.Property("digest matches itself under Compare", prop.ForAll(
		func(shape map[string]any) bool {
			fp, err := Fingerprint(shape)
			return err == nil && Compare(fp, fp) == OutcomeMatch
		},
		genShape(),
	))

	properties.TestingRun(t)
}
