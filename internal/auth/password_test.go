package auth

import (
	"strings"
	"testing"
)

// Low iteration count keeps the suite fast; the encoding logic is identical.
const testIterations = 1000

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		wantOk   bool
	}{
		{name: "correct password", password: "correct horse battery", attempt: "correct horse battery", wantOk: true},
		{name: "wrong password", password: "correct horse battery", attempt: "incorrect horse battery", wantOk: false},
		{name: "case sensitive", password: "Secret123", attempt: "secret123", wantOk: false},
		{name: "unicode", password: "pässwörd🔒", attempt: "pässwörd🔒", wantOk: true},
		{name: "single char difference", password: strings.Repeat("a", 64), attempt: strings.Repeat("a", 63) + "b", wantOk: false},
	}

	hasher := NewPasswordHasher(testIterations)

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			encoded, err := hasher.Hash(test.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			ok, err := hasher.Verify(test.attempt, encoded)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if ok != test.wantOk {
				t.Errorf("Verify() = %v, want %v", ok, test.wantOk)
			}
		})
	}
}

func TestPasswordHasher_EmptyPassword(t *testing.T) {
	hasher := NewPasswordHasher(testIterations)

	if _, err := hasher.Hash(""); err == nil {
		t.Error("Hash(\"\") should fail")
	}
	if _, err := hasher.Verify("", hasher.DummyHash()); err == nil {
		t.Error("Verify with empty password should fail")
	}
}

func TestPasswordHasher_UniqueSalts(t *testing.T) {
	hasher := NewPasswordHasher(testIterations)

	hash1, err := hasher.Hash("samePassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	hash2, err := hasher.Hash("samePassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash1 == hash2 {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestPasswordHasher_EncodedFormat(t *testing.T) {
	hasher := NewPasswordHasher(testIterations)

	encoded, err := hasher.Hash("test")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 {
		t.Fatalf("encoded hash should have 4 parts, got %d", len(parts))
	}
	if parts[0] != "pbkdf2-sha512" {
		t.Errorf("algorithm = %q, want pbkdf2-sha512", parts[0])
	}
	if parts[1] != "1000" {
		t.Errorf("iterations = %q, want 1000", parts[1])
	}
}

func TestPasswordHasher_IterationCountTravelsWithHash(t *testing.T) {
	// A hash created under an old iteration count keeps verifying after the
	// configured count is raised.
	oldHasher := NewPasswordHasher(testIterations)
	encoded, err := oldHasher.Hash("migrated password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	newHasher := NewPasswordHasher(testIterations * 4)
	ok, err := newHasher.Verify("migrated password", encoded)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !ok {
		t.Error("hash created under an older iteration count should still verify")
	}
}

func TestPasswordHasher_MalformedHashes(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "garbage", encoded: "not-a-hash"},
		{name: "wrong algorithm", encoded: "bcrypt$1000$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0"},
		{name: "zero iterations", encoded: "pbkdf2-sha512$0$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0"},
		{name: "non-numeric iterations", encoded: "pbkdf2-sha512$abc$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0"},
		{name: "short salt", encoded: "pbkdf2-sha512$1000$c2FsdA$ZGlnZXN0"},
		{name: "bad base64 salt", encoded: "pbkdf2-sha512$1000$!!!$ZGlnZXN0"},
		{name: "missing digest", encoded: "pbkdf2-sha512$1000$c2FsdHNhbHRzYWx0c2FsdA"},
	}

	hasher := NewPasswordHasher(testIterations)

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if _, err := hasher.Verify("whatever", test.encoded); err == nil {
				t.Errorf("Verify() should fail for %q", test.encoded)
			}
		})
	}
}

func TestPasswordHasher_DummyHashVerifies(t *testing.T) {
	hasher := NewPasswordHasher(testIterations)

	ok, err := hasher.Verify("any password", hasher.DummyHash())
	if err != nil {
		t.Fatalf("Verify() against dummy hash error = %v", err)
	}
	if ok {
		t.Error("no real password should match the dummy hash")
	}
	if hasher.DummyHash() != hasher.DummyHash() {
		t.Error("dummy hash should be stable")
	}
}
