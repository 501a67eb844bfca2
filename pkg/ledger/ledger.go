// Package ledger is the append-only decision ledger. It consumes frozen
// artifacts as values — it never holds a live reference back into the
// kernel — and appends one hash-chained entry per artifact plus one per
// violated finding, so per-article history is queryable downstream.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/adra-labs/adra/pkg/artifact"
	"github.com/adra-labs/adra/pkg/canonical"
	"github.com/adra-labs/adra/pkg/regime"
)

// EntryType categorizes ledger rows.
type EntryType string

const (
	EntryDecision EntryType = "DECISION"
	EntryFinding  EntryType = "FINDING"
)

// Entry is one immutable, hash-chained ledger row.
type Entry struct {
	Sequence    uint64         `json:"sequence"`
	Type        EntryType      `json:"type"`
	ArtifactID  string         `json:"artifact_id"`
	ContentHash string         `json:"content_hash"`
	PrevHash    string         `json:"prev_hash"`
	Timestamp   time.Time      `json:"timestamp"`
	Data        map[string]any `json:"data"`
}

// Backend mirrors appended entries into durable storage.
type Backend interface {
	Append(ctx context.Context, e Entry) error
}

// ErrNotFinalized rejects recording of artifacts that are still mutable.
var ErrNotFinalized = errors.New("ledger: artifact is not finalized")

// Ledger is the append-only, hash-chained decision log.
type Ledger struct {
	mu       sync.RWMutex
	entries  []Entry
	headHash string
	backend  Backend
	clock    func() time.Time
}

// New creates an empty ledger. backend may be nil for in-memory only.
func New(backend Backend) *Ledger {
	return &Ledger{
		headHash: "genesis",
		backend:  backend,
		clock:    time.Now,
	}
}

// WithClock overrides the clock for testing.
func (l *Ledger) WithClock(clock func() time.Time) *Ledger {
	l.clock = clock
	return l
}

// Record appends the artifact's decision row and one row per violated
// finding. Backend failures surface to the caller but the in-memory chain
// stays consistent: the backend is written after the chain advances.
func (l *Ledger) Record(ctx context.Context, a *artifact.Artifact) error {
	if a == nil || !a.Finalized {
		return ErrNotFinalized
	}

	decision := ""
	if a.Verdict != nil {
		decision = string(a.Verdict.Decision)
	}
	data := map[string]any{
		"decision": decision,
	}
	if a.Integrity != nil {
		data["content_hash"] = a.Integrity.ContentHash
	}
	if a.Lineage != nil {
		data["profile_id"] = a.Lineage.ProfileID
	}

	if err := l.append(ctx, EntryDecision, a.ID, data); err != nil {
		return err
	}

	for _, f := range a.Findings {
		if f.Status != regime.StatusViolated {
			continue
		}
		if err := l.append(ctx, EntryFinding, a.ID, map[string]any{
			"regime_id": f.RegimeID,
			"article":   f.Article,
			"severity":  string(f.Severity),
			"scope":     string(f.Scope),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) append(ctx context.Context, t EntryType, artifactID string, data map[string]any) error {
	l.mu.Lock()
	seq := uint64(len(l.entries)) + 1
	hashInput := map[string]any{
		"seq":       seq,
		"type":      t,
		"artifact":  artifactID,
		"data":      data,
		"prev_hash": l.headHash,
	}
	contentHash, err := canonical.Hash(hashInput)
	if err != nil {
		l.mu.Unlock()
		return fmt.Errorf("ledger: hash entry: %w", err)
	}

	entry := Entry{
		Sequence:    seq,
		Type:        t,
		ArtifactID:  artifactID,
		ContentHash: contentHash,
		PrevHash:    l.headHash,
		Timestamp:   l.clock(),
		Data:        data,
	}
	l.entries = append(l.entries, entry)
	l.headHash = contentHash
	l.mu.Unlock()

	if l.backend != nil {
		if err := l.backend.Append(ctx, entry); err != nil {
			return fmt.Errorf("ledger: backend append: %w", err)
		}
	}
	return nil
}

// Head returns the current chain head hash.
func (l *Ledger) Head() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.headHash
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy of all entries in order.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// VerifyChain walks the chain and reports the first break, if any.
func (l *Ledger) VerifyChain() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	prev := "genesis"
	for i, e := range l.entries {
		if e.PrevHash != prev {
			return fmt.Errorf("ledger: chain broken at sequence %d", i+1)
		}
		prev = e.ContentHash
	}
	return nil
}
