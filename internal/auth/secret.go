package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
)

// Secret is a freshly generated magic link credential. Token and Code are sent to the user;
// only the hashes are persisted.
type Secret struct {
	Token     string
	Code      string
	TokenHash string
	CodeHash  string
}

// NewSecret generates a 32-byte URL-safe token and a 6-digit code.
func NewSecret() (Secret, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return Secret{}, fmt.Errorf("generate token: %w", err)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return Secret{}, fmt.Errorf("generate code: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(buf)
	code := fmt.Sprintf("%06d", n.Int64())
	return Secret{
		Token:     token,
		Code:      code,
		TokenHash: HashSecret(token),
		CodeHash:  HashSecret(code),
	}, nil
}

// HashSecret returns the hex SHA-256 of s.
func HashSecret(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
