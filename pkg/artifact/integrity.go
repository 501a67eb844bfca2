package artifact

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/adra-labs/adra/pkg/canonical"
)

// Signer produces the integrity token signature from the content hash and
// nonce. The default is a keyless SHA3-256 pseudo-signature; deployments
// can substitute an asymmetric scheme behind the same contract.
type Signer interface {
	Sign(contentHash, nonce string) (string, error)
	Algorithm() string
}

type defaultSigner struct{}

func (defaultSigner) Sign(contentHash, nonce string) (string, error) {
	sum := sha3.Sum256([]byte(contentHash + ":" + nonce))
	return hex.EncodeToString(sum[:]), nil
}

func (defaultSigner) Algorithm() string { return "SHA3-256-PSEUDO" }

// substrate is the canonical decision content the token binds: verdict,
// finding trace, and lineage. Timestamps and ids stay outside so that two
// identical decisions bind to the same content hash.
func substrate(a *Artifact) map[string]any {
	return map[string]any{
		"verdict":  a.Verdict,
		"findings": a.Findings,
		"lineage":  a.Lineage,
	}
}

func computeToken(a *Artifact, signer Signer) (*Token, error) {
	contentHash, err := canonical.Hash(substrate(a))
	if err != nil {
		return nil, fmt.Errorf("artifact: token content hash: %w", err)
	}

	nonce, err := newNonce()
	if err != nil {
		return nil, fmt.Errorf("artifact: token nonce: %w", err)
	}

	sig, err := signer.Sign(contentHash, nonce)
	if err != nil {
		return nil, fmt.Errorf("artifact: token signature: %w", err)
	}

	return &Token{
		ContentHash: contentHash,
		Nonce:       nonce,
		Signature:   sig,
		Algorithm:   signer.Algorithm(),
	}, nil
}

func newNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ErrIntegrityMismatch reports a failed verification.
var ErrIntegrityMismatch = errors.New("artifact: integrity token does not match content")

// Verify recomputes the integrity binding of a finalized artifact. For
// the default signer it re-derives the signature too; for custom signers
// only the content hash is checked.
func Verify(a *Artifact) error {
	if a == nil || a.Integrity == nil {
		return errors.New("artifact: nothing to verify")
	}

	contentHash, err := canonical.Hash(substrate(a))
	if err != nil {
		return err
	}
	if contentHash != a.Integrity.ContentHash {
		return fmt.Errorf("%w: content hash", ErrIntegrityMismatch)
	}

	if a.Integrity.Algorithm == (defaultSigner{}).Algorithm() {
		sig, err := (defaultSigner{}).Sign(contentHash, a.Integrity.Nonce)
		if err != nil {
			return err
		}
		if sig != a.Integrity.Signature {
			return fmt.Errorf("%w: signature", ErrIntegrityMismatch)
		}
	}
	return nil
}
