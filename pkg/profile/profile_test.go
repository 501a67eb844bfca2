package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDoc = `
profile_id: TEST_SHOP
industry_id: ECOMMERCE
jurisdiction: EU
enabled_regimes:
  - EU_GDPR
  - TRANSACTION_INTEGRITY
custom_rules:
  - id: MAX_AMOUNT
    expr: "!(\"amount\" in payload) || payload.amount < 1000.0"
    severity: HIGH
    scope: TRANSACTION
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile_test_shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "TEST_SHOP", doc.ProfileID)
	require.Equal(t, "ECOMMERCE", doc.IndustryID)
	require.Equal(t, []string{"EU_GDPR", "TRANSACTION_INTEGRITY"}, doc.EnabledRegimes)
	require.Len(t, doc.CustomRules, 1)
	require.Equal(t, "MAX_AMOUNT", doc.CustomRules[0].ID)
	require.True(t, strings.HasPrefix(doc.ContentHash, "sha256:"))
}

func TestLoadFileDerivesIDFromFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile_anon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jurisdiction: EU\n"), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ANON", doc.ProfileID)
}

func TestLoadFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile_bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml:::"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestContentHashTracksBytes(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "profile_a.yaml")
	p2 := filepath.Join(dir, "profile_b.yaml")
	require.NoError(t, os.WriteFile(p1, []byte(sampleDoc), 0o600))
	require.NoError(t, os.WriteFile(p2, []byte(sampleDoc+"\n# trailing comment\n"), 0o600))

	d1, err := LoadFile(p1)
	require.NoError(t, err)
	d2, err := LoadFile(p2)
	require.NoError(t, err)
	require.NotEqual(t, d1.ContentHash, d2.ContentHash)
}

func TestLoadDirPicksOnlyProfileFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile_shop.yaml"), []byte(sampleDoc), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.yaml"), []byte("x: 1\n"), 0o600))

	s, err := LoadDir(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"TEST_SHOP"}, s.IDs())
}

func TestStorePutRequiresID(t *testing.T) {
	s := NewStore()
	require.Error(t, s.Put(&Document{}))
	require.Error(t, s.Put(nil))
}

func TestStorePutComputesHash(t *testing.T) {
	s := NewStore()
	doc := &Document{ProfileID: "P1", Jurisdiction: "EU"}
	require.NoError(t, s.Put(doc))
	require.True(t, strings.HasPrefix(doc.ContentHash, "sha256:"))

	got, ok := s.Lookup("P1")
	require.True(t, ok)
	require.Equal(t, doc, got)
}

func TestBuiltinProfiles(t *testing.T) {
	s := Builtin()
	for _, id := range []string{"VLOP_SOCIAL_META", "ECOM_EU_RETAIL", "FINTECH_EU_CASP", "KIDS_APP_US"} {
		doc, ok := s.Lookup(id)
		require.True(t, ok, id)
		require.NotEmpty(t, doc.EnabledRegimes, id)
		require.NotEmpty(t, doc.Jurisdiction, id)
		require.NotEmpty(t, doc.ContentHash, id)
	}

	vlop, _ := s.Lookup("VLOP_SOCIAL_META")
	require.Contains(t, vlop.EnabledRegimes, "EU_DSA")
	require.Equal(t, "EU", vlop.Jurisdiction)
}
