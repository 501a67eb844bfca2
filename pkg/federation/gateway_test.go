package federation

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adra-labs/adra/pkg/artifact"
	"github.com/adra-labs/adra/pkg/authority"
	"github.com/adra-labs/adra/pkg/regime"
	"github.com/adra-labs/adra/pkg/veto"
)

func sampleArtifact(t *testing.T) *artifact.Artifact {
	t.Helper()
	findings := []regime.Finding{{
		RegimeID: "EU_DSA", Article: "Art 16",
		Status: regime.StatusViolated, Severity: regime.SeverityHigh,
		Scope:    regime.ScopeTransaction,
		Evidence: map[string]any{"harmful_content_flag": true},
	}}

	b := artifact.NewBuilder()
	require.NoError(t, b.SetInput(map[string]any{"action": "POST_CONTENT", "user": "u-1"}))
	require.NoError(t, b.SetFindings(findings))
	require.NoError(t, b.SetVerdict(authority.Adjudicate(findings, "1.0.0")))
	require.NoError(t, b.SetVeto(veto.Derive(findings)))
	a, err := b.Build()
	require.NoError(t, err)
	return a
}

func TestParseMode(t *testing.T) {
	require.Equal(t, ModeOff, ParseMode(""))
	require.Equal(t, ModeOff, ParseMode("EVERYTHING"))
	require.Equal(t, ModeHashOnly, ParseMode("HASH_ONLY"))
	require.Equal(t, ModeRedacted, ParseMode("REDACTED"))
	require.Equal(t, ModeFull, ParseMode("FULL"))
}

func TestHashOnlyPayload(t *testing.T) {
	a := sampleArtifact(t)
	raw, err := BuildPayload(a, ModeHashOnly)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, a.ID, out["artifact_id"])
	require.Equal(t, a.Integrity.ContentHash, out["content_hash"])
	require.Equal(t, "DENY", out["decision"])
	require.NotContains(t, out, "findings")
	require.NotContains(t, out, "input")
}

func TestRedactedPayloadStripsEvidence(t *testing.T) {
	a := sampleArtifact(t)
	raw, err := BuildPayload(a, ModeRedacted)
	require.NoError(t, err)

	var out artifact.Artifact
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Nil(t, out.Input.Snapshot)
	require.Equal(t, a.Input.Hash, out.Input.Hash)
	require.Len(t, out.Findings, 1)
	require.Nil(t, out.Findings[0].Evidence)
	require.Equal(t, regime.StatusViolated, out.Findings[0].Status)
	require.Len(t, out.Veto.Basis, 1)
	require.Nil(t, out.Veto.Basis[0].Finding.Evidence)

	// The source artifact must be untouched.
	require.NotNil(t, a.Input.Snapshot)
	require.NotNil(t, a.Findings[0].Evidence)
}

func TestFullPayloadCarriesEverything(t *testing.T) {
	a := sampleArtifact(t)
	raw, err := BuildPayload(a, ModeFull)
	require.NoError(t, err)

	var out artifact.Artifact
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, "u-1", out.Input.Snapshot["user"])
	require.NotNil(t, out.Findings[0].Evidence)
}

func TestBuildPayloadOffIsError(t *testing.T) {
	_, err := BuildPayload(sampleArtifact(t), ModeOff)
	require.Error(t, err)
}

type fakeSink struct {
	name     string
	err      error
	payloads [][]byte
}

func (s *fakeSink) Name() string { return s.name }
func (s *fakeSink) Dispatch(_ context.Context, _ string, payload []byte) error {
	if s.err != nil {
		return s.err
	}
	s.payloads = append(s.payloads, payload)
	return nil
}

func TestExportCountsFailuresWithoutReturningThem(t *testing.T) {
	good := &fakeSink{name: "good"}
	bad := &fakeSink{name: "bad", err: errors.New("unreachable")}
	gw := NewGateway(ModeHashOnly, []Sink{good, bad}, nil)

	report := gw.Export(context.Background(), sampleArtifact(t))
	require.Equal(t, 1, report.Dispatched)
	require.Equal(t, 1, report.Failed)
	require.Len(t, good.payloads, 1)
}

func TestExportOffIsNoop(t *testing.T) {
	sink := &fakeSink{name: "s"}
	gw := NewGateway(ModeOff, []Sink{sink}, nil)

	report := gw.Export(context.Background(), sampleArtifact(t))
	require.Zero(t, report.Dispatched)
	require.Zero(t, report.Failed)
	require.Empty(t, sink.payloads)
}

func TestFilesystemSinkAppendOnly(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFilesystemSink(dir)
	require.NoError(t, err)

	require.NoError(t, sink.Dispatch(context.Background(), "a-1", []byte(`{"x":1}`)))

	data, err := os.ReadFile(filepath.Join(dir, "a-1.json"))
	require.NoError(t, err)
	require.JSONEq(t, `{"x":1}`, string(data))

	// A second write for the same artifact must not overwrite the record.
	err = sink.Dispatch(context.Background(), "a-1", []byte(`{"x":2}`))
	require.Error(t, err)
}
