package stack

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// SecretAlphabet is the character set secrets are drawn from.
	SecretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// SecretLength is the number of characters in every generated secret.
	SecretLength = 32
)

// rejectAbove is the largest multiple of len(SecretAlphabet) that fits in a
// byte. Bytes at or above it are discarded to keep sampling uniform.
const rejectAbove = 256 - 256%len(SecretAlphabet)

// SecretGenerator produces alphanumeric secrets from a random byte source.
type SecretGenerator struct {
	src io.Reader
}

// NewSecretGenerator returns a generator reading from src, or from
// crypto/rand when src is nil.
func NewSecretGenerator(src io.Reader) *SecretGenerator {
	if src == nil {
		src = rand.Reader
	}
	return &SecretGenerator{src: src}
}

// Generate returns one SecretLength character secret.
func (g *SecretGenerator) Generate() (string, error) {
	out := make([]byte, 0, SecretLength)
	buf := make([]byte, SecretLength)

	for len(out) < SecretLength {
		if _, err := io.ReadFull(g.src, buf); err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, SecretAlphabet[int(b)%len(SecretAlphabet)])
			if len(out) == SecretLength {
				break
			}
		}
	}

	return string(out), nil
}

// IsSecret reports whether s has the shape of a generated secret.
func IsSecret(s string) bool {
	if len(s) != SecretLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
