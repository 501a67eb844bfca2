// Package profile loads and serves the authoritative regulatory profile
// documents. A profile document is the single source of truth for the
// enabled-regime list and jurisdiction of an evaluation scope.
package profile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// CustomRule is a profile-declared CEL rule evaluated by the
// PROFILE_CUSTOM regime.
type CustomRule struct {
	ID          string `yaml:"id" json:"id"`
	Expr        string `yaml:"expr" json:"expr"`
	Category    string `yaml:"category,omitempty" json:"category,omitempty"`
	Severity    string `yaml:"severity,omitempty" json:"severity,omitempty"`
	Scope       string `yaml:"scope,omitempty" json:"scope,omitempty"`
	Remediation string `yaml:"remediation,omitempty" json:"remediation,omitempty"`
}

// Document is one regulator-grade profile document.
type Document struct {
	ProfileID      string       `yaml:"profile_id" json:"profile_id"`
	IndustryID     string       `yaml:"industry_id" json:"industry_id"`
	Jurisdiction   string       `yaml:"jurisdiction" json:"jurisdiction"`
	EnabledRegimes []string     `yaml:"enabled_regimes" json:"enabled_regimes"`
	CustomRules    []CustomRule `yaml:"custom_rules,omitempty" json:"custom_rules,omitempty"`

	// ContentHash is the SHA-256 of the raw document bytes, computed at
	// load time. Built-in documents hash their canonical serialization.
	ContentHash string `yaml:"-" json:"content_hash"`
}

// Store is a read-mostly cache of profile documents keyed by profile id.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewStore creates an empty profile store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*Document)}
}

// Put installs a document, computing its content hash if unset.
func (s *Store) Put(doc *Document) error {
	if doc == nil || doc.ProfileID == "" {
		return fmt.Errorf("profile: document must carry a profile_id")
	}
	if doc.ContentHash == "" {
		raw, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("profile: hash %q: %w", doc.ProfileID, err)
		}
		doc.ContentHash = hashBytes(raw)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ProfileID] = doc
	return nil
}

// Lookup returns the document for a profile id.
func (s *Store) Lookup(profileID string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[profileID]
	return d, ok
}

// IDs returns the stored profile ids (unordered).
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.docs))
	for id := range s.docs {
		out = append(out, id)
	}
	return out
}

// LoadDir loads every profile_*.yaml document from dir into a new store.
func LoadDir(dir string) (*Store, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "profile_*.yaml"))
	if err != nil {
		return nil, err
	}

	s := NewStore()
	for _, path := range matches {
		doc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := s.Put(doc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadFile loads a single profile document.
func LoadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: load %q: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("profile: parse %q: %w", path, err)
	}
	if doc.ProfileID == "" {
		base := strings.TrimSuffix(filepath.Base(path), ".yaml")
		doc.ProfileID = strings.ToUpper(strings.TrimPrefix(base, "profile_"))
	}
	doc.ContentHash = hashBytes(raw)
	return &doc, nil
}

func hashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return "sha256:" + hex.EncodeToString(sum[:])
}
