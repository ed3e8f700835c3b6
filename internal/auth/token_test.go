package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/soklet/toystore-app-sub001/internal/domain"
)

type fakeSecretStore struct {
	key []byte
	err error
}

func (s *fakeSecretStore) SigningPrivateKey() ([]byte, error) {
	return s.key, s.err
}

func testSeed() []byte {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	return seed
}

func newTestKeys(t *testing.T) *SigningKeys {
	t.Helper()
	keys, err := NewSigningKeys(&fakeSecretStore{key: testSeed()})
	if err != nil {
		t.Fatalf("NewSigningKeys() error = %v", err)
	}
	return keys
}

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	return NewTokenManager(newTestKeys(t))
}

func testToken(now time.Time) domain.AccessToken {
	return domain.AccessToken{
		AccountID: "account-1",
		Audience:  domain.TokenAudienceAPI,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := newTestTokenManager(t)

	// Sub-second precision must survive the round trip.
	now := time.Date(2025, 6, 15, 10, 30, 45, 123456000, time.UTC)
	original := domain.AccessToken{
		AccountID: "account-42",
		Audience:  domain.TokenAudienceSSE,
		Scopes:    []domain.TokenScope{domain.ScopeSSEHandshake},
		IssuedAt:  now,
		ExpiresAt: now.Add(5*time.Minute + 250*time.Millisecond),
	}

	encoded, err := tm.Encode(original)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if parts := strings.Split(encoded, "."); len(parts) != 3 {
		t.Fatalf("encoded token should have 3 segments, got %d", len(parts))
	}

	decoded, err := tm.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if decoded.AccountID != original.AccountID {
		t.Errorf("AccountID = %q, want %q", decoded.AccountID, original.AccountID)
	}
	if decoded.Audience != original.Audience {
		t.Errorf("Audience = %q, want %q", decoded.Audience, original.Audience)
	}
	if len(decoded.Scopes) != 1 || decoded.Scopes[0] != domain.ScopeSSEHandshake {
		t.Errorf("Scopes = %v, want [SSE_HANDSHAKE]", decoded.Scopes)
	}
	if !decoded.IssuedAt.Equal(original.IssuedAt) {
		t.Errorf("IssuedAt = %v, want %v", decoded.IssuedAt, original.IssuedAt)
	}
	if !decoded.ExpiresAt.Equal(original.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", decoded.ExpiresAt, original.ExpiresAt)
	}
}

func TestTokenManager_EncodeRejectsInvalidTokens(t *testing.T) {
	tm := newTestTokenManager(t)
	now := time.Now()

	tests := []struct {
		name  string
		token domain.AccessToken
	}{
		{
			name: "missing account id",
			token: domain.AccessToken{
				Audience: domain.TokenAudienceAPI, IssuedAt: now, ExpiresAt: now.Add(time.Hour),
			},
		},
		{
			name: "unknown audience",
			token: domain.AccessToken{
				AccountID: "a", Audience: "BOGUS", IssuedAt: now, ExpiresAt: now.Add(time.Hour),
			},
		},
		{
			name: "expiry before issuance",
			token: domain.AccessToken{
				AccountID: "a", Audience: domain.TokenAudienceAPI, IssuedAt: now, ExpiresAt: now.Add(-time.Hour),
			},
		},
		{
			name: "expiry equals issuance",
			token: domain.AccessToken{
				AccountID: "a", Audience: domain.TokenAudienceAPI, IssuedAt: now, ExpiresAt: now,
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if _, err := tm.Encode(test.token); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Encode() error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

// flipByteInSegment decodes one base64url segment, flips a byte and
// re-encodes, keeping the token structurally valid so only the signature
// check can catch the change.
func flipByteInSegment(t *testing.T, encoded string, segment, offset int) string {
	t.Helper()
	parts := strings.Split(encoded, ".")
	raw, err := base64.RawURLEncoding.DecodeString(parts[segment])
	if err != nil {
		t.Fatalf("decode segment %d: %v", segment, err)
	}
	raw[offset%len(raw)] ^= 0x01
	parts[segment] = base64.RawURLEncoding.EncodeToString(raw)
	return strings.Join(parts, ".")
}

func TestTokenManager_TamperDetection(t *testing.T) {
	tm := newTestTokenManager(t)

	encoded, err := tm.Encode(testToken(time.Now()))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	t.Run("payload byte flips", func(t *testing.T) {
		for offset := 0; offset < 16; offset++ {
			tampered := flipByteInSegment(t, encoded, 1, offset)
			if _, err := tm.Decode(tampered); !errors.Is(err, ErrTokenInvalid) {
				t.Fatalf("Decode() after payload flip at %d: error = %v, want ErrTokenInvalid", offset, err)
			}
		}
	})

	t.Run("signature byte flips", func(t *testing.T) {
		for offset := 0; offset < 16; offset++ {
			tampered := flipByteInSegment(t, encoded, 2, offset)
			if _, err := tm.Decode(tampered); !errors.Is(err, ErrTokenInvalid) {
				t.Fatalf("Decode() after signature flip at %d: error = %v, want ErrTokenInvalid", offset, err)
			}
		}
	})
}

func TestTokenManager_DecodeMalformed(t *testing.T) {
	tm := newTestTokenManager(t)

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "not a jwt", encoded: "garbage"},
		{name: "two segments", encoded: "aGVhZGVy.cGF5bG9hZA"},
		{name: "four segments", encoded: "a.b.c.d"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if _, err := tm.Decode(test.encoded); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Decode() error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

func TestTokenManager_DecodeSucceedsForExpiredToken(t *testing.T) {
	tm := newTestTokenManager(t)

	past := time.Now().Add(-2 * time.Hour)
	token := domain.AccessToken{
		AccountID: "account-1",
		Audience:  domain.TokenAudienceAPI,
		IssuedAt:  past,
		ExpiresAt: past.Add(time.Hour),
	}

	encoded, err := tm.Encode(token)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// Expiry is the enforcer's explicit check, not a decode failure.
	decoded, err := tm.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode() of expired token error = %v", err)
	}
	if !decoded.ExpiredAt(time.Now()) {
		t.Error("decoded token should report itself expired")
	}
}

func TestTokenManager_RejectsForeignSigningKey(t *testing.T) {
	tm := newTestTokenManager(t)

	otherSeed := testSeed()
	otherSeed[0] ^= 0xFF
	otherKeys, err := NewSigningKeys(&fakeSecretStore{key: otherSeed})
	if err != nil {
		t.Fatalf("NewSigningKeys() error = %v", err)
	}
	otherTM := NewTokenManager(otherKeys)

	encoded, err := otherTM.Encode(testToken(time.Now()))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, err := tm.Decode(encoded); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Decode() of foreign-key token error = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	tm := newTestTokenManager(t)

	// A structurally valid HS256 token must be rejected outright: only the
	// configured algorithm is ever accepted.
	now := time.Now()
	claims := &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "account-1",
			Audience:  jwt.ClaimStrings{string(domain.TokenAudienceAPI)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	hsToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("shared-secret"))
	if err != nil {
		t.Fatalf("sign HS256 token: %v", err)
	}

	if _, err := tm.Decode(hsToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Decode() of HS256 token error = %v, want ErrTokenInvalid", err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}
	if _, err := tm.Decode(noneToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Decode() of alg=none token error = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenManager_DecodeRequiresClaims(t *testing.T) {
	keys := newTestKeys(t)
	tm := NewTokenManager(keys)

	sign := func(t *testing.T, claims jwt.Claims) string {
		t.Helper()
		encoded, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(keys.Private())
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return encoded
	}

	now := time.Now()
	tests := []struct {
		name   string
		claims jwt.Claims
	}{
		{
			name: "missing subject",
			claims: &tokenClaims{RegisteredClaims: jwt.RegisteredClaims{
				Audience:  jwt.ClaimStrings{"API"},
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
		{
			name: "missing audience",
			claims: &tokenClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "account-1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
		{
			name: "multiple audiences",
			claims: &tokenClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "account-1",
				Audience:  jwt.ClaimStrings{"API", "SSE"},
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
		{
			name: "unknown audience",
			claims: &tokenClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "account-1",
				Audience:  jwt.ClaimStrings{"OTHER"},
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
		{
			name: "missing issued at",
			claims: &tokenClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "account-1",
				Audience:  jwt.ClaimStrings{"API"},
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
		{
			name: "missing expiry",
			claims: &tokenClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:  "account-1",
				Audience: jwt.ClaimStrings{"API"},
				IssuedAt: jwt.NewNumericDate(now),
			}},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if _, err := tm.Decode(sign(t, test.claims)); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Decode() error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}
