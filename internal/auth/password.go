package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordAlgorithm = "pbkdf2-sha512"
	saltLength        = 16
	keyLength         = 64

	// DefaultPBKDF2Iterations keeps a single verification in the
	// tens-of-milliseconds range on current hardware.
	DefaultPBKDF2Iterations = 210_000
)

var (
	errEmptyPassword = errors.New("password must not be empty")
	errMalformedHash = errors.New("malformed password hash")
)

// PasswordHasher derives and verifies salted PBKDF2-HMAC-SHA512 digests.
// Encoded hashes embed the algorithm, iteration count and salt
// ("pbkdf2-sha512$<iterations>$<salt>$<digest>"), so hashes stored under an
// older iteration count keep verifying after the configured count changes.
type PasswordHasher struct {
	iterations int
	dummyHash  string
}

// NewPasswordHasher builds a hasher with the given iteration count.
func NewPasswordHasher(iterations int) *PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultPBKDF2Iterations
	}
	h := &PasswordHasher{iterations: iterations}
	// Fixed salt keeps the dummy digest stable across calls; it guards no
	// real credential.
	dummySalt := make([]byte, saltLength)
	h.dummyHash = h.encode(dummySalt, h.derive("dummy-password", dummySalt, iterations))
	return h
}

// Hash derives a salted digest for the password with a fresh random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errEmptyPassword
	}
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return h.encode(salt, h.derive(password, salt, h.iterations)), nil
}

// Verify recomputes the digest with the salt and iteration count embedded in
// encoded and compares in constant time. A mismatch is not an error; only
// malformed input is.
func (h *PasswordHasher) Verify(password, encoded string) (bool, error) {
	if password == "" {
		return false, errEmptyPassword
	}
	salt, iterations, digest, err := h.decode(encoded)
	if err != nil {
		return false, err
	}
	computed := h.derive(password, salt, iterations)
	return subtle.ConstantTimeCompare(computed, digest) == 1, nil
}

// DummyHash returns a well-formed hash of a throwaway password. Callers
// verify against it when no account matched, so the cost of a lookup miss
// equals the cost of a password mismatch.
func (h *PasswordHasher) DummyHash() string {
	return h.dummyHash
}

func (h *PasswordHasher) derive(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha512.New)
}

func (h *PasswordHasher) encode(salt, digest []byte) string {
	return strings.Join([]string{
		passwordAlgorithm,
		strconv.Itoa(h.iterations),
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	}, "$")
}

func (h *PasswordHasher) decode(encoded string) (salt []byte, iterations int, digest []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != passwordAlgorithm {
		return nil, 0, nil, errMalformedHash
	}
	iterations, err = strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return nil, 0, nil, errMalformedHash
	}
	salt, err = base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil || len(salt) < saltLength {
		return nil, 0, nil, errMalformedHash
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(digest) == 0 {
		return nil, 0, nil, errMalformedHash
	}
	return salt, iterations, digest, nil
}
