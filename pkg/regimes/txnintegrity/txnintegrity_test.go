package txnintegrity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adra-labs/adra/pkg/regime"
)

func TestApplicable(t *testing.T) {
	require.True(t, applicable(regime.Payload{"action": "PURCHASE"}))
	require.True(t, applicable(regime.Payload{
		"action":          "POST_CONTENT",
		"risk_indicators": map[string]any{"fraud_suspected": true},
	}))
	require.False(t, applicable(regime.Payload{"action": "POST_CONTENT"}))
}

func TestFraudSignalBlocks(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"action":          "PURCHASE",
		"risk_indicators": map[string]any{"fraud_suspected": true},
	})
	require.NoError(t, err)

	f := findings[0]
	require.Equal(t, RuleFraudSignal, f.Article)
	require.Equal(t, regime.StatusViolated, f.Status)
	require.Equal(t, regime.SeverityHigh, f.Severity)
	require.True(t, f.Blocking())
}

func TestRepeatOffenderEscalatesToCritical(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"action": "PURCHASE",
		"risk_indicators": map[string]any{
			"fraud_suspected":     true,
			"previous_violations": float64(2),
		},
	})
	require.NoError(t, err)
	require.Equal(t, regime.SeverityCritical, findings[0].Severity)
}

func TestCleanTransactionSatisfies(t *testing.T) {
	findings, err := resolve(regime.Payload{"action": "PURCHASE"})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Equal(t, regime.StatusSatisfied, findings[0].Status)
}

func TestRepeatOffenseRuleAtThree(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"action":          "PURCHASE",
		"risk_indicators": map[string]any{"previous_violations": float64(3)},
	})
	require.NoError(t, err)

	var repeat *regime.Finding
	for i := range findings {
		if findings[i].Article == RuleRepeatOffense {
			repeat = &findings[i]
		}
	}
	require.NotNil(t, repeat)
	require.Equal(t, regime.ScopePlatformAudit, repeat.Scope)
	require.False(t, repeat.Blocking())
}

func TestVelocityAnomalyIsMediumTransaction(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"action":          "TRANSFER",
		"risk_indicators": map[string]any{"velocity_anomaly": true},
	})
	require.NoError(t, err)

	var vel *regime.Finding
	for i := range findings {
		if findings[i].Article == RuleVelocity {
			vel = &findings[i]
		}
	}
	require.NotNil(t, vel)
	require.Equal(t, regime.SeverityMedium, vel.Severity)
	require.False(t, vel.Blocking())
}
