package gdpr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adra-labs/adra/pkg/regime"
)

func TestApplicable(t *testing.T) {
	require.True(t, applicable(regime.Payload{"personal_data": map[string]any{}}))
	require.True(t, applicable(regime.Payload{"meta": map[string]any{"jurisdiction": "EU"}}))
	require.False(t, applicable(regime.Payload{"action": "PURCHASE"}))
}

func TestMissingLawfulBasisViolates(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"personal_data": map[string]any{"fields": map[string]any{}},
	})
	require.NoError(t, err)

	f := findByArticle(t, findings, ArtLawfulBasis)
	require.Equal(t, regime.StatusViolated, f.Status)
	require.Equal(t, regime.SeverityHigh, f.Severity)
	require.Equal(t, regime.ScopeTransaction, f.Scope)
	require.True(t, f.Blocking())
}

func TestDeclaredLawfulBasisSatisfies(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"personal_data": map[string]any{"lawful_basis": "CONTRACT"},
	})
	require.NoError(t, err)

	f := findByArticle(t, findings, ArtLawfulBasis)
	require.Equal(t, regime.StatusSatisfied, f.Status)
	require.Equal(t, "CONTRACT", f.Evidence["lawful_basis"])
}

func TestSpecialCategoriesWithoutConsent(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"personal_data": map[string]any{
			"lawful_basis":       "CONTRACT",
			"special_categories": true,
		},
	})
	require.NoError(t, err)

	f := findByArticle(t, findings, ArtSpecialData)
	require.Equal(t, regime.StatusViolated, f.Status)
	require.Equal(t, regime.SeverityCritical, f.Severity)
}

func TestSpecialCategoriesWithConsent(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"personal_data": map[string]any{
			"lawful_basis":       "CONSENT",
			"special_categories": true,
		},
	})
	require.NoError(t, err)

	for _, f := range findings {
		require.NotEqual(t, ArtSpecialData, f.Article)
	}
}

func TestCrossBorderWithoutTransferBasis(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"personal_data": map[string]any{
			"lawful_basis":          "CONSENT",
			"cross_border_transfer": true,
		},
	})
	require.NoError(t, err)

	f := findByArticle(t, findings, ArtCrossBorder)
	require.Equal(t, regime.StatusViolated, f.Status)
	require.Equal(t, regime.SeverityHigh, f.Severity)
}

func TestBreachReportIsOrganizationalOnly(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"meta":            map[string]any{"jurisdiction": "EU"},
		"risk_indicators": map[string]any{"data_breach_reported": true},
	})
	require.NoError(t, err)

	f := findByArticle(t, findings, ArtSecurity)
	require.Equal(t, regime.StatusViolated, f.Status)
	require.Equal(t, regime.SeverityHigh, f.Severity)
	require.Equal(t, regime.ScopeOrganizational, f.Scope)
	require.False(t, f.Blocking())
}

func TestNoPersonalDataNotApplicableFinding(t *testing.T) {
	findings, err := resolve(regime.Payload{
		"meta": map[string]any{"jurisdiction": "EU"},
	})
	require.NoError(t, err)

	f := findByArticle(t, findings, ArtLawfulness)
	require.Equal(t, regime.StatusNotApplicable, f.Status)
}

func findByArticle(t *testing.T, findings []regime.Finding, article string) regime.Finding {
	t.Helper()
	for _, f := range findings {
		if f.Article == article {
			return f
		}
	}
	t.Fatalf("no finding for article %s", article)
	return regime.Finding{}
}
