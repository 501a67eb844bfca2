package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adra-labs/adra/pkg/regime"
	"github.com/adra-labs/adra/pkg/scope"
)

func specWith(id string, resolve func(regime.Payload) ([]regime.Finding, error)) *regime.Spec {
	return &regime.Spec{
		ID:           id,
		Name:         "Test " + id,
		Domain:       "testing",
		Framework:    id,
		Kind:         regime.KindCustom,
		Jurisdiction: "GLOBAL",
		Authority:    "Test",
		Applicable:   func(regime.Payload) bool { return true },
		Resolve:      resolve,
	}
}

func TestEvaluateOrdersFindingsByRegistration(t *testing.T) {
	reg := regime.NewRegistry()
	require.NoError(t, reg.Register(specWith("FIRST", func(regime.Payload) ([]regime.Finding, error) {
		return []regime.Finding{{Article: "F-1", Status: regime.StatusSatisfied}}, nil
	})))
	require.NoError(t, reg.Register(specWith("SECOND", func(regime.Payload) ([]regime.Finding, error) {
		return []regime.Finding{{Article: "S-1", Status: regime.StatusSatisfied}}, nil
	})))

	e := NewEvaluator(reg, nil)
	// Scope lists the regimes out of order; evaluation follows registration.
	findings := e.Evaluate(regime.Payload{}, &scope.Decision{
		EnabledRegimes: []string{"SECOND", "FIRST"},
	})

	require.Len(t, findings, 2)
	require.Equal(t, "FIRST", findings[0].RegimeID)
	require.Equal(t, "SECOND", findings[1].RegimeID)
}

func TestInapplicableRegimeSkipped(t *testing.T) {
	reg := regime.NewRegistry()
	s := specWith("SKIPPED", func(regime.Payload) ([]regime.Finding, error) {
		return []regime.Finding{{Article: "X", Status: regime.StatusViolated}}, nil
	})
	s.Applicable = func(regime.Payload) bool { return false }
	require.NoError(t, reg.Register(s))

	e := NewEvaluator(reg, nil)
	findings := e.Evaluate(regime.Payload{}, &scope.Decision{EnabledRegimes: []string{"SKIPPED"}})
	require.Empty(t, findings)
}

func TestResolverErrorIsolatedToPlaceholder(t *testing.T) {
	reg := regime.NewRegistry()
	require.NoError(t, reg.Register(specWith("BROKEN", func(regime.Payload) ([]regime.Finding, error) {
		return nil, errors.New("upstream registry offline")
	})))
	require.NoError(t, reg.Register(specWith("HEALTHY", func(regime.Payload) ([]regime.Finding, error) {
		return []regime.Finding{{Article: "OK", Status: regime.StatusSatisfied}}, nil
	})))

	e := NewEvaluator(reg, nil)
	findings := e.Evaluate(regime.Payload{}, &scope.Decision{
		EnabledRegimes: []string{"BROKEN", "HEALTHY"},
	})

	require.Len(t, findings, 2)
	require.Equal(t, "BROKEN", findings[0].RegimeID)
	require.Equal(t, "EVALUATION", findings[0].Article)
	require.Equal(t, regime.StatusUnknown, findings[0].Status)
	require.Equal(t, "upstream registry offline", findings[0].Evidence["error"])
	require.False(t, findings[0].Blocking())

	require.Equal(t, "HEALTHY", findings[1].RegimeID)
}

func TestResolverPanicIsolated(t *testing.T) {
	reg := regime.NewRegistry()
	require.NoError(t, reg.Register(specWith("PANICS", func(regime.Payload) ([]regime.Finding, error) {
		panic("nil map write")
	})))

	e := NewEvaluator(reg, nil)
	findings := e.Evaluate(regime.Payload{}, &scope.Decision{EnabledRegimes: []string{"PANICS"}})

	require.Len(t, findings, 1)
	require.Equal(t, regime.StatusUnknown, findings[0].Status)
	require.Contains(t, findings[0].Evidence["error"], "resolver panicked")
}

func TestApplicablePanicIsolated(t *testing.T) {
	reg := regime.NewRegistry()
	s := specWith("PANICS", func(regime.Payload) ([]regime.Finding, error) { return nil, nil })
	s.Applicable = func(regime.Payload) bool { panic("boom") }
	require.NoError(t, reg.Register(s))

	e := NewEvaluator(reg, nil)
	findings := e.Evaluate(regime.Payload{}, &scope.Decision{EnabledRegimes: []string{"PANICS"}})

	require.Len(t, findings, 1)
	require.Equal(t, regime.StatusUnknown, findings[0].Status)
}

func TestFindingsNormalized(t *testing.T) {
	reg := regime.NewRegistry()
	require.NoError(t, reg.Register(specWith("SLOPPY", func(regime.Payload) ([]regime.Finding, error) {
		return []regime.Finding{{Article: "A", Status: "MAYBE", Severity: "URGENT"}}, nil
	})))

	e := NewEvaluator(reg, nil)
	findings := e.Evaluate(regime.Payload{}, &scope.Decision{EnabledRegimes: []string{"SLOPPY"}})

	require.Equal(t, "SLOPPY", findings[0].RegimeID)
	require.Equal(t, regime.StatusUnknown, findings[0].Status)
	require.Equal(t, regime.SeverityLow, findings[0].Severity)
}
