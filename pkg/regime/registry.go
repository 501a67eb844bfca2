package regime

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Kind buckets regimes by the concern they police.
type Kind string

const (
	KindDataProtection     Kind = "DATA_PROTECTION"
	KindPlatformSafety     Kind = "PLATFORM_SAFETY"
	KindFinancialIntegrity Kind = "FINANCIAL_INTEGRITY"
	KindAIGovernance       Kind = "AI_GOVERNANCE"
	KindPaymentSecurity    Kind = "PAYMENT_SECURITY"
	KindCustom             Kind = "CUSTOM"
)

// Spec describes one registered regulatory evaluator.
//
// Applicable and Resolve are the two-method plugin contract: Applicable is
// a cheap predicate over the payload, Resolve produces the findings. The
// Resolve signature itself enforces the uniform finding-list return type.
type Spec struct {
	ID           string
	Name         string
	Domain       string
	Framework    string
	Kind         Kind
	Jurisdiction string
	Enforceable  bool
	L4Executable bool
	Authority    string
	Applicable   func(p Payload) bool
	Resolve      func(p Payload) ([]Finding, error)
}

// ErrNotRegistered is returned when a regime id is not in the registry.
var ErrNotRegistered = errors.New("regime not registered")

// aliases maps legacy regime ids to their canonical form so callers never
// see two ids for the same regime.
var aliases = map[string]string{
	"AI_ACT":        "EU_AI_ACT",
	"GDPR":          "EU_GDPR",
	"DSA":           "EU_DSA",
	"MICA":          "EU_MICA",
	"EU_AML":        "AML_CFT",
	"TXN_INTEGRITY": "TRANSACTION_INTEGRITY",
}

// Canonical resolves a possibly-legacy regime id to its canonical id.
func Canonical(id string) string {
	if c, ok := aliases[id]; ok {
		return c
	}
	return id
}

// Provider is one entry in the compile-time discovery table: a named
// registration entry point for an independently-developed regime pack.
type Provider struct {
	Name     string
	Register func(r *Registry) error
}

// Registry is the process-wide catalog of regimes. Populate once at
// startup via Init, then read-only; Init(force=true) swaps in the rebuilt
// table atomically so concurrent evaluations never observe a partial rebuild.
type Registry struct {
	mu          sync.RWMutex
	specs       map[string]*Spec
	order       []string
	initialized bool
	logger      *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs:  make(map[string]*Spec),
		logger: slog.Default(),
	}
}

// WithLogger overrides the registry logger.
func (r *Registry) WithLogger(l *slog.Logger) *Registry {
	if l != nil {
		r.logger = l
	}
	return r
}

// Register validates and stores a spec under its canonical id.
// Re-registration under the same id replaces the prior entry in place
// (last write wins, original order position kept).
func (r *Registry) Register(spec *Spec) error {
	if spec == nil {
		return errors.New("regime: nil spec")
	}
	if err := validateSpec(spec); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := Canonical(spec.ID)
	if _, exists := r.specs[id]; !exists {
		r.order = append(r.order, id)
	}
	clone := *spec
	clone.ID = id
	r.specs[id] = &clone
	return nil
}

func validateSpec(spec *Spec) error {
	missing := func(field string) error {
		return fmt.Errorf("regime: invalid spec %q: missing required field %q", spec.ID, field)
	}
	if spec.ID == "" {
		return errors.New("regime: invalid spec: missing required field \"regime_id\"")
	}
	if spec.Name == "" {
		return missing("name")
	}
	if spec.Domain == "" {
		return missing("domain")
	}
	if spec.Framework == "" {
		return missing("framework")
	}
	if spec.Kind == "" {
		return missing("kind")
	}
	if spec.Jurisdiction == "" {
		return missing("jurisdiction")
	}
	if spec.Authority == "" {
		return missing("authority")
	}
	if spec.Applicable == nil {
		return missing("applicable")
	}
	if spec.Resolve == nil {
		return missing("resolver")
	}
	return nil
}

// Init populates the registry from the discovery table. It is a no-op if
// the registry is already populated unless force is true. A provider that
// fails to register is logged and skipped; the rest still register.
//
// Providers run against a staging registry and the result is swapped in
// under a single write-lock acquisition, so concurrent readers only ever
// see the previous table or the completed one, never a partial rebuild.
func (r *Registry) Init(force bool, providers []Provider) error {
	r.mu.Lock()
	if r.initialized && !force {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	staging := NewRegistry().WithLogger(r.logger)
	for _, p := range providers {
		if p.Register == nil {
			r.logger.Warn("regime discovery: provider has no entry point", "provider", p.Name)
			continue
		}
		if err := p.Register(staging); err != nil {
			r.logger.Warn("regime discovery: registration failed, skipping",
				"provider", p.Name, "error", err)
			continue
		}
	}

	r.mu.Lock()
	r.specs = staging.specs
	r.order = staging.order
	r.initialized = true
	r.mu.Unlock()
	return nil
}

// Get returns the spec for a (possibly legacy) regime id.
func (r *Registry) Get(id string) (*Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[Canonical(id)]
	return s, ok
}

// Has reports whether the id resolves to a registered regime.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// IDs returns the registered regime ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered regimes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Sort filters the registry's registration order down to the given ids
// (alias-normalized). Unknown ids are dropped. This is the one ordering
// the kernel uses to keep finding sequences reproducible.
func (r *Registry) Sort(ids []string) []string {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[Canonical(id)] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(ids))
	for _, id := range r.order {
		if want[id] {
			out = append(out, id)
		}
	}
	return out
}
