// Package scope resolves the evaluation scope for one payload: the
// authoritative set of enabled regime ids plus a jurisdiction, reconciled
// from the routing table and the profile document store.
package scope

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/adra-labs/adra/pkg/profile"
	"github.com/adra-labs/adra/pkg/regime"
)

// Decision is the resolved scope for one payload. Computed fresh per
// request; never cached across payloads with different profile/industry.
type Decision struct {
	IndustryID     string   `json:"industry_id"`
	ProfileID      string   `json:"profile_id"`
	Jurisdiction   string   `json:"jurisdiction"`
	EnabledRegimes []string `json:"enabled_regimes"`
	ProfileHash    string   `json:"profile_hash,omitempty"`
	Inferred       bool     `json:"inferred"`
}

// RoutingEntry is the fast, UI-facing routing record for a profile.
type RoutingEntry struct {
	IndustryID     string
	Jurisdiction   string
	EnabledRegimes []string
}

// RoutingTable maps profile id to its routing record.
type RoutingTable map[string]RoutingEntry

// RoutingFromStore derives a routing table from the profile documents.
// Deployments with a separately maintained table pass their own; this
// derived one is consistent with the documents under strict checking.
func RoutingFromStore(profiles *profile.Store) RoutingTable {
	t := make(RoutingTable)
	if profiles == nil {
		return t
	}
	for _, id := range profiles.IDs() {
		doc, ok := profiles.Lookup(id)
		if !ok {
			continue
		}
		t[id] = RoutingEntry{
			IndustryID:     doc.IndustryID,
			Jurisdiction:   doc.Jurisdiction,
			EnabledRegimes: append([]string(nil), doc.EnabledRegimes...),
		}
	}
	return t
}

// ConfigError marks configuration the evaluation scope cannot be trusted
// with. It always surfaces to the caller, never downgrades.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "scope: " + e.Reason }

// ErrScopeDivergence reports a routing-table/profile-document mismatch
// caught by the fail-fast check.
var ErrScopeDivergence = errors.New("scope: routing table diverges from profile document")

// Resolver maps (industry, profile) to a Decision.
type Resolver struct {
	registry *regime.Registry
	profiles *profile.Store
	routing  RoutingTable
	strict   bool
	logger   *slog.Logger
}

// NewResolver creates a resolver. strict enables the fail-fast divergence
// check between the routing table and the profile documents.
func NewResolver(reg *regime.Registry, profiles *profile.Store, routing RoutingTable, strict bool) *Resolver {
	return &Resolver{
		registry: reg,
		profiles: profiles,
		routing:  routing,
		strict:   strict,
		logger:   slog.Default(),
	}
}

// WithLogger overrides the resolver logger.
func (r *Resolver) WithLogger(l *slog.Logger) *Resolver {
	if l != nil {
		r.logger = l
	}
	return r
}

// Resolve computes the scope for a payload. industryID and profileID may
// come from the caller or a best-effort classifier; both are treated
// identically and carry no special trust.
func (r *Resolver) Resolve(p regime.Payload, industryID, profileID string) (*Decision, error) {
	if profileID != "" && r.profiles != nil {
		if doc, ok := r.profiles.Lookup(profileID); ok {
			return r.resolveFromProfile(p, industryID, doc)
		}
	}

	// Incomplete or unknown identity: fall back to inference.
	r.logger.Debug("scope: falling back to inference",
		"industry_id", industryID, "profile_id", profileID)
	return r.infer(p, industryID, profileID), nil
}

func (r *Resolver) resolveFromProfile(p regime.Payload, industryID string, doc *profile.Document) (*Decision, error) {
	// The profile document is authoritative. The routing table, when it
	// also declares a regime list, must agree; silent drift between the
	// two sources would yield an untrustworthy scope.
	if entry, ok := r.routing[doc.ProfileID]; ok && r.strict && len(entry.EnabledRegimes) > 0 {
		if !sameRegimeSet(entry.EnabledRegimes, doc.EnabledRegimes) {
			return nil, fmt.Errorf("%w: profile %q routing=%v document=%v",
				ErrScopeDivergence, doc.ProfileID, entry.EnabledRegimes, doc.EnabledRegimes)
		}
	}

	enabled := make([]string, 0, len(doc.EnabledRegimes))
	seen := make(map[string]bool)
	for _, id := range doc.EnabledRegimes {
		cid := regime.Canonical(id)
		if seen[cid] {
			continue
		}
		seen[cid] = true
		if !r.registry.Has(cid) {
			r.logger.Warn("scope: profile names unregistered regime, dropping",
				"profile_id", doc.ProfileID, "regime_id", cid)
			continue
		}
		enabled = append(enabled, cid)
	}
	// PROFILE_CUSTOM rides along automatically when the document declares rules.
	if len(doc.CustomRules) > 0 && r.registry.Has("PROFILE_CUSTOM") && !seen["PROFILE_CUSTOM"] {
		enabled = append(enabled, "PROFILE_CUSTOM")
	}

	industry := doc.IndustryID
	if industry == "" {
		industry = industryID
	}

	return &Decision{
		IndustryID:     industry,
		ProfileID:      doc.ProfileID,
		Jurisdiction:   doc.Jurisdiction,
		EnabledRegimes: r.registry.Sort(enabled),
		ProfileHash:    doc.ContentHash,
	}, nil
}

func sameRegimeSet(a, b []string) bool {
	na := normalizeSet(a)
	nb := normalizeSet(b)
	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}

func normalizeSet(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		cid := regime.Canonical(id)
		if !seen[cid] {
			seen[cid] = true
			out = append(out, cid)
		}
	}
	sort.Strings(out)
	return out
}
