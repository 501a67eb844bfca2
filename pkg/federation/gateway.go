// Package federation exports finalized decision artifacts to external
// systems. Export is strictly one-way and non-fatal: a failed export must
// never retroactively change or block a decision already rendered, so
// every sink failure is caught, logged, and dropped here.
package federation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/adra-labs/adra/pkg/artifact"
)

// Mode controls how much of the artifact leaves the trust boundary.
type Mode string

const (
	ModeOff      Mode = "OFF"
	ModeHashOnly Mode = "HASH_ONLY"
	ModeRedacted Mode = "REDACTED"
	ModeFull     Mode = "FULL"
)

// ParseMode normalizes a configured mode string; unknown values fall back
// to OFF so a config typo can never cause an over-share.
func ParseMode(raw string) Mode {
	switch Mode(raw) {
	case ModeHashOnly, ModeRedacted, ModeFull:
		return Mode(raw)
	}
	return ModeOff
}

// Sink delivers an export payload to one destination.
type Sink interface {
	Name() string
	Dispatch(ctx context.Context, artifactID string, payload []byte) error
}

// Report summarizes one export run.
type Report struct {
	Mode       Mode
	Dispatched int
	Failed     int
}

// Gateway fans a mode-appropriate payload out to the configured sinks.
type Gateway struct {
	mode   Mode
	sinks  []Sink
	logger *slog.Logger
}

// NewGateway creates a gateway. With ModeOff or no sinks, Export is a no-op.
func NewGateway(mode Mode, sinks []Sink, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{mode: mode, sinks: sinks, logger: logger}
}

// Export builds the outbound payload and dispatches it to every sink.
// Failures are logged and counted, never returned.
func (g *Gateway) Export(ctx context.Context, a *artifact.Artifact) Report {
	report := Report{Mode: g.mode}
	if g.mode == ModeOff || len(g.sinks) == 0 || a == nil {
		return report
	}

	payload, err := BuildPayload(a, g.mode)
	if err != nil {
		g.logger.Error("federation: payload build failed, dropping export",
			"artifact_id", a.ID, "error", err)
		report.Failed = len(g.sinks)
		return report
	}

	for _, sink := range g.sinks {
		if err := sink.Dispatch(ctx, a.ID, payload); err != nil {
			g.logger.Warn("federation: sink dispatch failed",
				"sink", sink.Name(), "artifact_id", a.ID, "error", err)
			report.Failed++
			continue
		}
		report.Dispatched++
	}
	return report
}

// BuildPayload serializes the artifact per the export mode.
func BuildPayload(a *artifact.Artifact, mode Mode) ([]byte, error) {
	switch mode {
	case ModeHashOnly:
		return json.Marshal(hashOnly(a))
	case ModeRedacted:
		return json.Marshal(redact(a))
	case ModeFull:
		return json.Marshal(a)
	}
	return nil, fmt.Errorf("federation: mode %q exports nothing", mode)
}

func hashOnly(a *artifact.Artifact) map[string]any {
	out := map[string]any{
		"artifact_id": a.ID,
		"created_at":  a.CreatedAt,
	}
	if a.Integrity != nil {
		out["content_hash"] = a.Integrity.ContentHash
		out["signature"] = a.Integrity.Signature
	}
	if a.Verdict != nil {
		out["decision"] = a.Verdict.Decision
	}
	return out
}

// redact strips the input snapshot and all evidence maps, keeping ids,
// hashes, statuses, and the verdict intact.
func redact(a *artifact.Artifact) *artifact.Artifact {
	clone := *a
	if a.Input != nil {
		clone.Input = &artifact.InputSection{Hash: a.Input.Hash}
	}
	clone.Findings = nil
	for _, f := range a.Findings {
		rf := f
		rf.Evidence = nil
		clone.Findings = append(clone.Findings, rf)
	}
	if a.Veto != nil {
		v := *a.Veto
		basis := v.Basis
		v.Basis = nil
		for _, bEntry := range basis {
			be := bEntry
			be.Finding.Evidence = nil
			v.Basis = append(v.Basis, be)
		}
		clone.Veto = &v
	}
	return &clone
}
