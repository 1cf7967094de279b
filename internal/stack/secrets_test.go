package stack

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSecretGenerator_Shape(t *testing.T) {
	gen := NewSecretGenerator(nil)

	for i := 0; i < 100; i++ {
		s, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(s) != SecretLength {
			t.Fatalf("len = %d, want %d", len(s), SecretLength)
		}
		for _, c := range s {
			if !strings.ContainsRune(SecretAlphabet, c) {
				t.Fatalf("secret %q contains %q outside the alphabet", s, c)
			}
		}
		if !IsSecret(s) {
			t.Errorf("IsSecret(%q) = false", s)
		}
	}
}

func TestSecretGenerator_Deterministic(t *testing.T) {
	src := make([]byte, 0, 64)
	for i := 0; i < 64; i++ {
		src = append(src, byte(i))
	}

	gen := NewSecretGenerator(bytes.NewReader(src))
	s, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if want := SecretAlphabet[:SecretLength]; s != want {
		t.Errorf("Generate() = %q, want %q", s, want)
	}
}

func TestSecretGenerator_RejectsBiasedBytes(t *testing.T) {
	// Bytes 248..255 would skew the distribution and must be skipped.
	src := bytes.Repeat([]byte{255}, SecretLength)
	src = append(src, bytes.Repeat([]byte{62}, SecretLength)...)

	gen := NewSecretGenerator(bytes.NewReader(src))
	s, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if want := strings.Repeat("a", SecretLength); s != want {
		t.Errorf("Generate() = %q, want %q", s, want)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestSecretGenerator_SourceError(t *testing.T) {
	gen := NewSecretGenerator(failingReader{})
	if _, err := gen.Generate(); err == nil {
		t.Fatal("expected error from failing source")
	}
}

func TestIsSecret(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"valid", strings.Repeat("aZ9", 10) + "ab", true},
		{"too short", "abc", false},
		{"too long", strings.Repeat("a", SecretLength+1), false},
		{"symbol", strings.Repeat("a", SecretLength-1) + "-", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSecret(tt.value); got != tt.want {
				t.Errorf("IsSecret(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
