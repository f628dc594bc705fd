package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}
	return key
}

func writePEM(t *testing.T, block *pem.Block) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "key.pem")
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestCredentials_Sign(t *testing.T) {
	key := testKey(t)
	fixed := time.UnixMilli(1732766400000)
	creds := &Credentials{KeyID: "test-key-id", PrivateKey: key, now: func() time.Time { return fixed }}

	req, err := http.NewRequest(http.MethodGet, "https://api.example.com/trade-api/v2/markets/trades?limit=1000", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := creds.Sign(req); err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if got := req.Header.Get(HeaderKey); got != "test-key-id" {
		t.Errorf("%s = %q, want %q", HeaderKey, got, "test-key-id")
	}
	if got := req.Header.Get(HeaderTimestamp); got != "1732766400000" {
		t.Errorf("%s = %q, want %q", HeaderTimestamp, got, "1732766400000")
	}

	sig, err := base64.StdEncoding.DecodeString(req.Header.Get(HeaderSignature))
	if err != nil {
		t.Fatalf("signature is not valid base64: %v", err)
	}
	// The query string is not part of the signed message.
	hashed := sha256.Sum256([]byte("1732766400000GET/trade-api/v2/markets/trades"))
	if err := rsa.VerifyPSS(&key.PublicKey, crypto.SHA256, hashed[:], sig,
		&rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash}); err != nil {
		t.Errorf("signature does not verify: %v", err)
	}
}

func TestMessage(t *testing.T) {
	if got := Message(42, "GET", "/trade-api/v2/events/X"); got != "42GET/trade-api/v2/events/X" {
		t.Errorf("Message() = %q", got)
	}
}

func TestLoadPrivateKey(t *testing.T) {
	key := testKey(t)
	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal PKCS#8: %v", err)
	}

	tests := []struct {
		name  string
		block *pem.Block
	}{
		{"pkcs8", &pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}},
		{"pkcs1", &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, err := LoadPrivateKey(writePEM(t, tt.block))
			if err != nil {
				t.Fatalf("LoadPrivateKey failed: %v", err)
			}
			if loaded.N.Cmp(key.N) != 0 {
				t.Error("loaded key does not match original")
			}
		})
	}
}

func TestLoadPrivateKey_Errors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		if _, err := LoadPrivateKey("/nonexistent/path/to/key.pem"); err == nil {
			t.Error("expected error for nonexistent file")
		}
	})

	t.Run("invalid pem", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.pem")
		if err := os.WriteFile(path, []byte("not a pem file"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadPrivateKey(path); err == nil {
			t.Error("expected error for invalid PEM")
		}
	})
}

func TestLoadCredentials(t *testing.T) {
	key := testKey(t)
	pkcs8, _ := x509.MarshalPKCS8PrivateKey(key)
	path := writePEM(t, &pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8})

	creds, err := LoadCredentials("my-key-id", path)
	if err != nil {
		t.Fatalf("LoadCredentials failed: %v", err)
	}
	if creds.KeyID != "my-key-id" || creds.PrivateKey == nil {
		t.Errorf("creds = %+v, want key id and private key", creds)
	}

	if _, err := LoadCredentials("", path); err == nil {
		t.Error("expected error for missing key ID")
	}
	if _, err := LoadCredentials("id", ""); err == nil {
		t.Error("expected error for missing key path")
	}
}
