// Package canonical provides RFC 8785 (JSON Canonicalization Scheme)
// serialization and deterministic hashing for ADRA decision artifacts.
//
// Every hash that ends up inside an artifact — input snapshot hash,
// integrity token content hash, drift fingerprint — goes through this
// package so that the same value always produces the same digest.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// JCS returns the RFC 8785 canonical JSON form of v.
//
// v is first marshaled with encoding/json (respecting struct tags), then
// transformed: keys sorted by UTF-8 bytes, fixed separators, no HTML escaping.
func JCS(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canonical: marshal failed: %w", err)
	}
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonical: jcs transform failed: %w", err)
	}
	return out, nil
}

// Hash returns the SHA-256 digest of the canonical form of v,
// prefixed with the algorithm identifier.
func Hash(v any) (string, error) {
	b, err := JCS(v)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}

// HashBytes computes the SHA-256 digest of raw bytes.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}
