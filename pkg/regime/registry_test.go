package regime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func validSpec(id string) *Spec {
	return &Spec{
		ID:           id,
		Name:         "Test Regime " + id,
		Domain:       "testing",
		Framework:    id,
		Kind:         KindCustom,
		Jurisdiction: "GLOBAL",
		Authority:    "Test Authority",
		Applicable:   func(Payload) bool { return true },
		Resolve:      func(Payload) ([]Finding, error) { return nil, nil },
	}
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(validSpec("REGIME_A")))

	spec, ok := r.Get("REGIME_A")
	require.True(t, ok)
	require.Equal(t, "REGIME_A", spec.ID)
	require.Equal(t, 1, r.Len())
}

func TestRegisterMissingResolver(t *testing.T) {
	s := validSpec("REGIME_A")
	s.Resolve = nil

	err := NewRegistry().Register(s)
	require.Error(t, err)
	require.Contains(t, err.Error(), `missing required field "resolver"`)
}

func TestRegisterMissingFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*Spec)
	}{
		{`"regime_id"`, func(s *Spec) { s.ID = "" }},
		{`"name"`, func(s *Spec) { s.Name = "" }},
		{`"domain"`, func(s *Spec) { s.Domain = "" }},
		{`"framework"`, func(s *Spec) { s.Framework = "" }},
		{`"kind"`, func(s *Spec) { s.Kind = "" }},
		{`"jurisdiction"`, func(s *Spec) { s.Jurisdiction = "" }},
		{`"authority"`, func(s *Spec) { s.Authority = "" }},
		{`"applicable"`, func(s *Spec) { s.Applicable = nil }},
		{`"resolver"`, func(s *Spec) { s.Resolve = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			s := validSpec("REGIME_A")
			tc.mutate(s)
			err := NewRegistry().Register(s)
			require.Error(t, err)
			require.Contains(t, err.Error(), "missing required field "+tc.field)
		})
	}
}

func TestRegisterNilSpec(t *testing.T) {
	require.Error(t, NewRegistry().Register(nil))
}

func TestAliasesResolve(t *testing.T) {
	require.Equal(t, "EU_AI_ACT", Canonical("AI_ACT"))
	require.Equal(t, "EU_GDPR", Canonical("GDPR"))
	require.Equal(t, "TRANSACTION_INTEGRITY", Canonical("TXN_INTEGRITY"))
	require.Equal(t, "AML_CFT", Canonical("EU_AML"))
	require.Equal(t, "UNMAPPED", Canonical("UNMAPPED"))
}

func TestRegisterUnderAlias(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(validSpec("TXN_INTEGRITY")))

	// Stored and retrievable under the canonical id; the legacy id still
	// resolves to the same entry.
	spec, ok := r.Get("TRANSACTION_INTEGRITY")
	require.True(t, ok)
	require.Equal(t, "TRANSACTION_INTEGRITY", spec.ID)
	require.True(t, r.Has("TXN_INTEGRITY"))
	require.Equal(t, []string{"TRANSACTION_INTEGRITY"}, r.IDs())
}

func TestReregistrationKeepsOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(validSpec("A")))
	require.NoError(t, r.Register(validSpec("B")))

	replacement := validSpec("A")
	replacement.Name = "Replaced"
	require.NoError(t, r.Register(replacement))

	require.Equal(t, []string{"A", "B"}, r.IDs())
	spec, _ := r.Get("A")
	require.Equal(t, "Replaced", spec.Name)
}

func TestInitSkipsFailingProvider(t *testing.T) {
	r := NewRegistry()
	providers := []Provider{
		{Name: "good", Register: func(r *Registry) error { return r.Register(validSpec("GOOD")) }},
		{Name: "bad", Register: func(r *Registry) error { return errors.New("boom") }},
		{Name: "also-good", Register: func(r *Registry) error { return r.Register(validSpec("ALSO_GOOD")) }},
	}

	require.NoError(t, r.Init(false, providers))
	require.Equal(t, []string{"GOOD", "ALSO_GOOD"}, r.IDs())
}

func TestInitIdempotentUnlessForced(t *testing.T) {
	r := NewRegistry()
	first := []Provider{{Name: "a", Register: func(r *Registry) error { return r.Register(validSpec("A")) }}}
	second := []Provider{{Name: "b", Register: func(r *Registry) error { return r.Register(validSpec("B")) }}}

	require.NoError(t, r.Init(false, first))
	require.NoError(t, r.Init(false, second))
	require.Equal(t, []string{"A"}, r.IDs())

	require.NoError(t, r.Init(true, second))
	require.Equal(t, []string{"B"}, r.IDs())
}

func TestForcedReinitNeverExposesPartialTable(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Init(false, []Provider{
		{Name: "old-a", Register: func(reg *Registry) error { return reg.Register(validSpec("OLD_A")) }},
		{Name: "old-b", Register: func(reg *Registry) error { return reg.Register(validSpec("OLD_B")) }},
	}))

	midRebuild := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Init(true, []Provider{
			{Name: "new-a", Register: func(reg *Registry) error { return reg.Register(validSpec("NEW_A")) }},
			{Name: "new-b", Register: func(reg *Registry) error {
				close(midRebuild)
				<-release
				return reg.Register(validSpec("NEW_B"))
			}},
		})
	}()

	// Between the two provider registrations the old table must still be
	// fully visible, never an empty or half-built one.
	<-midRebuild
	require.Equal(t, 2, r.Len())
	require.Equal(t, []string{"OLD_A", "OLD_B"}, r.IDs())
	require.True(t, r.Has("OLD_B"))

	close(release)
	<-done
	require.Equal(t, []string{"NEW_A", "NEW_B"}, r.IDs())
}

func TestSortFollowsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, r.Register(validSpec(id)))
	}

	require.Equal(t, []string{"A", "C", "D"}, r.Sort([]string{"D", "C", "A"}))
	require.Empty(t, r.Sort([]string{"UNKNOWN"}))
}

func TestSortNormalizesAliases(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(validSpec("EU_GDPR")))
	require.Equal(t, []string{"EU_GDPR"}, r.Sort([]string{"GDPR"}))
}
