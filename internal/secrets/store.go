package secrets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/soklet/toystore-app-sub001/internal/config"
)

// Store supplies secret material to the rest of the process. It is consulted
// exactly once, at startup; failures here are fatal configuration errors.
type Store interface {
	SigningPrivateKey() ([]byte, error)
}

// envStore decodes the Ed25519 seed from a base64url config value.
type envStore struct {
	encoded string
}

// fileStore reads the base64url Ed25519 seed from a file on disk.
type fileStore struct {
	path string
}

// NewStore selects a secrets backend from configuration. An inline key takes
// precedence over a key file.
func NewStore(cfg config.AuthConfig) (Store, error) {
	switch {
	case cfg.SigningKey != "":
		return &envStore{encoded: cfg.SigningKey}, nil
	case cfg.SigningKeyFile != "":
		return &fileStore{path: cfg.SigningKeyFile}, nil
	default:
		return nil, errors.New("no signing key configured: set AUTH_SIGNING_KEY or AUTH_SIGNING_KEY_FILE")
	}
}

func (s *envStore) SigningPrivateKey() ([]byte, error) {
	return decodeSeed(s.encoded)
}

func (s *fileStore) SigningPrivateKey() ([]byte, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read signing key file: %w", err)
	}
	return decodeSeed(string(raw))
}

func decodeSeed(encoded string) ([]byte, error) {
	seed, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("signing key is not valid base64url: %w", err)
	}
	return seed, nil
}
