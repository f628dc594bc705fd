// Package auth signs Kalshi REST requests with RSA-PSS.
//
// Market data endpoints are public; signing is only needed when an API key
// is configured, for example to get the higher authenticated rate limits.
package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Header names set on signed requests.
const (
	HeaderKey       = "KALSHI-ACCESS-KEY"
	HeaderTimestamp = "KALSHI-ACCESS-TIMESTAMP"
	HeaderSignature = "KALSHI-ACCESS-SIGNATURE"
)

// Credentials holds the API key and private key for signing requests.
type Credentials struct {
	KeyID      string          // API key ID from Kalshi dashboard
	PrivateKey *rsa.PrivateKey // RSA private key for signing

	now func() time.Time
}

// LoadCredentials loads credentials from key ID and private key file path.
func LoadCredentials(keyID, privateKeyPath string) (*Credentials, error) {
	if keyID == "" {
		return nil, errors.New("API key ID is required")
	}
	if privateKeyPath == "" {
		return nil, errors.New("private key path is required")
	}

	privateKey, err := LoadPrivateKey(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("load private key: %w", err)
	}

	return &Credentials{KeyID: keyID, PrivateKey: privateKey}, nil
}

// LoadPrivateKey loads an RSA private key from a PEM file in PKCS#8 or
// PKCS#1 form.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to decode PEM block")
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("key is not an RSA private key")
		}
		return rsaKey, nil
	}

	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return rsaKey, nil
}

// Sign adds the access headers to req. The signed message is the
// millisecond timestamp, the method and the URL path, without the query.
func (c *Credentials) Sign(req *http.Request) error {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	ts := now().UnixMilli()

	signature, err := c.signature(ts, req.Method, req.URL.Path)
	if err != nil {
		return err
	}

	req.Header.Set(HeaderKey, c.KeyID)
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderSignature, signature)
	return nil
}

func (c *Credentials) signature(tsMillis int64, method, path string) (string, error) {
	hashed := sha256.Sum256([]byte(Message(tsMillis, method, path)))

	sig, err := rsa.SignPSS(rand.Reader, c.PrivateKey, crypto.SHA256, hashed[:],
		&rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash})
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Message returns the string that is signed for a request.
func Message(tsMillis int64, method, path string) string {
	return strconv.FormatInt(tsMillis, 10) + method + path
}
