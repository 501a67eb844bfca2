package dsa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adra-labs/adra/pkg/regime"
)

func TestApplicable(t *testing.T) {
	require.True(t, applicable(regime.Payload{"action": "POST_CONTENT"}))
	require.True(t, applicable(regime.Payload{"meta": map[string]any{"is_vlop": true}}))
	require.False(t, applicable(regime.Payload{"action": "PURCHASE"}))
}

func TestHarmfulContentBlocks(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"action":          "POST_CONTENT",
		"risk_indicators": map[string]any{"harmful_content_flag": true},
	})
	require.NoError(t, err)
	require.Len(t, findings, 1)

	f := findings[0]
	require.Equal(t, ArtNoticeAction, f.Article)
	require.Equal(t, regime.StatusViolated, f.Status)
	require.Equal(t, regime.SeverityHigh, f.Severity)
	require.Equal(t, regime.ScopeTransaction, f.Scope)
	require.True(t, f.Blocking())
}

func TestIllegalContentBlocks(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"action":          "SHARE_CONTENT",
		"risk_indicators": map[string]any{"illegal_content_flag": true},
	})
	require.NoError(t, err)
	require.True(t, findings[0].Blocking())
}

func TestCleanContentSatisfies(t *testing.T) {
	findings, err := resolve(regime.Payload{"action": "POST_CONTENT"})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Equal(t, regime.StatusSatisfied, findings[0].Status)
}

func TestVLOPStaleRiskAssessmentIsAuditScoped(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"action": "POST_CONTENT",
		"meta":   map[string]any{"is_vlop": true},
	})
	require.NoError(t, err)

	var audit *regime.Finding
	for i := range findings {
		if findings[i].Article == ArtRiskAssess {
			audit = &findings[i]
		}
	}
	require.NotNil(t, audit)
	require.Equal(t, regime.StatusViolated, audit.Status)
	require.Equal(t, regime.ScopePlatformAudit, audit.Scope)
	require.False(t, audit.Blocking())
}

func TestVLOPCurrentRiskAssessment(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"meta": map[string]any{"is_vlop": true, "risk_assessment_current": true},
	})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Equal(t, regime.StatusSatisfied, findings[0].Status)
}
