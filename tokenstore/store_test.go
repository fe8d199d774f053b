package tokenstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Token(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Token() on empty store error = %v, want ErrNoToken", err)
	}

	if err := store.SetToken("abc"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}
	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "abc" {
		t.Errorf("Token() = %q, want abc", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := store.Token(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Token() after Clear() error = %v, want ErrNoToken", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	if _, err := store.Token(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Token() before write error = %v, want ErrNoToken", err)
	}

	if err := store.SetToken("abc"); err != nil {
		t.Fatalf("SetToken() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file mode = %o, want 600", perm)
	}

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "abc" {
		t.Errorf("Token() = %q, want abc", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := store.Token(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Token() after Clear() error = %v, want ErrNoToken", err)
	}

	// Clearing an already-cleared store stays silent.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  abc\n\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	token, err := NewFileStore(path).Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "abc" {
		t.Errorf("Token() = %q, want abc", token)
	}
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestExpired(t *testing.T) {
	past := signedToken(t, jwt.MapClaims{"sub": "7", "exp": time.Now().Add(-time.Hour).Unix()})
	future := signedToken(t, jwt.MapClaims{"sub": "7", "exp": time.Now().Add(time.Hour).Unix()})
	noExp := signedToken(t, jwt.MapClaims{"sub": "7"})

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"expired", past, true},
		{"valid", future, false},
		{"no exp claim", noExp, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Expired(tc.token)
			if err != nil {
				t.Fatalf("Expired() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Expired() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExpired_RejectsGarbage(t *testing.T) {
	if _, err := Expired("not-a-jwt"); err == nil {
		t.Error("Expired() on garbage input should fail")
	}
}
