package auth

import (
	"crypto/ed25519"
	"errors"
	"testing"
)

func TestNewSigningKeys(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		wantErr bool
	}{
		{name: "32 byte seed", key: testSeed(), wantErr: false},
		{name: "64 byte private key", key: ed25519.NewKeyFromSeed(testSeed()), wantErr: false},
		{name: "empty", key: nil, wantErr: true},
		{name: "truncated", key: testSeed()[:16], wantErr: true},
		{name: "oversized", key: make([]byte, 100), wantErr: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			keys, err := NewSigningKeys(&fakeSecretStore{key: test.key})
			if (err != nil) != test.wantErr {
				t.Fatalf("NewSigningKeys() error = %v, wantErr %v", err, test.wantErr)
			}
			if test.wantErr {
				return
			}
			// Signing with the private key must verify with the public key.
			message := []byte("sign me")
			sig := ed25519.Sign(keys.Private(), message)
			if !ed25519.Verify(keys.Public(), message, sig) {
				t.Error("public key does not verify private key signatures")
			}
		})
	}
}

func TestNewSigningKeys_SeedAndPrivateKeyAgree(t *testing.T) {
	fromSeed, err := NewSigningKeys(&fakeSecretStore{key: testSeed()})
	if err != nil {
		t.Fatalf("NewSigningKeys(seed) error = %v", err)
	}
	fromPrivate, err := NewSigningKeys(&fakeSecretStore{key: ed25519.NewKeyFromSeed(testSeed())})
	if err != nil {
		t.Fatalf("NewSigningKeys(private) error = %v", err)
	}
	if !fromSeed.Public().Equal(fromPrivate.Public()) {
		t.Error("seed and expanded private key should derive the same public key")
	}
}

func TestNewSigningKeys_StoreFailure(t *testing.T) {
	storeErr := errors.New("secret store unavailable")
	if _, err := NewSigningKeys(&fakeSecretStore{err: storeErr}); !errors.Is(err, storeErr) {
		t.Errorf("NewSigningKeys() error = %v, want wrapped store error", err)
	}
}
