package auth

import (
	"crypto/ed25519"
	"fmt"

	"github.com/soklet/toystore-app-sub001/internal/secrets"
)

// SigningKeys holds the process-wide Ed25519 keypair used to sign and verify
// access tokens. Loaded once at startup and immutable afterwards, so it is
// safe to share across requests without locking.
type SigningKeys struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
}

// NewSigningKeys derives the keypair from the secret store. Missing or
// malformed key material is a fatal configuration error, never a per-request
// condition.
func NewSigningKeys(store secrets.Store) (*SigningKeys, error) {
	raw, err := store.SigningPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("load signing key: %w", err)
	}

	var private ed25519.PrivateKey
	switch len(raw) {
	case ed25519.SeedSize:
		private = ed25519.NewKeyFromSeed(raw)
	case ed25519.PrivateKeySize:
		private = ed25519.PrivateKey(raw)
	default:
		return nil, fmt.Errorf("signing key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}

	return &SigningKeys{
		private: private,
		public:  private.Public().(ed25519.PublicKey),
	}, nil
}

// Private returns the signing key.
func (k *SigningKeys) Private() ed25519.PrivateKey { return k.private }

// Public returns the verification key.
func (k *SigningKeys) Public() ed25519.PublicKey { return k.public }
