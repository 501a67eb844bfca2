package regimes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryOrder(t *testing.T) {
	reg := DefaultRegistry(Options{})

	require.Equal(t, []string{
		"EU_GDPR",
		"EU_DSA",
		"EU_AI_ACT",
		"TRANSACTION_INTEGRITY",
		"AML_CFT",
		"PCI_DSS",
		"EU_MICA",
		"NIST_AI_RMF",
		"US_COPPA",
		"PROFILE_CUSTOM",
	}, reg.IDs())
}

func TestEveryCatalogEntryIsComplete(t *testing.T) {
	reg := DefaultRegistry(Options{})
	for _, id := range reg.IDs() {
		spec, ok := reg.Get(id)
		require.True(t, ok, id)
		require.NotEmpty(t, spec.Name, id)
		require.NotEmpty(t, spec.Jurisdiction, id)
		require.NotEmpty(t, spec.Authority, id)
		require.NotNil(t, spec.Applicable, id)
		require.NotNil(t, spec.Resolve, id)
	}
}

func TestLegacyAliasesResolveInDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry(Options{})
	require.True(t, reg.Has("AI_ACT"))
	require.True(t, reg.Has("GDPR"))
	require.True(t, reg.Has("TXN_INTEGRITY"))
}
