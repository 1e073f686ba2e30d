package mgf1

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"testing"
)

func TestGenerateKnownVector(t *testing.T) {
	// MGF1(b"seed", 10) using SHA-1, a standard test vector.
	want, err := hex.DecodeString("0c83d34eef44f07c6cb7")
	if err != nil {
		t.Fatal(err)
	}

	got, err := Generate([]byte("seed"), 10, sha1.New)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Generate(%q, 10) = %x, want %x", "seed", got, want)
	}
}

func TestGenerateEmpty(t *testing.T) {
	got, err := Generate(nil, 0, sha1.New)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Generate(nil, 0) = %x, want empty", got)
	}
}

func TestGenerateLengthExceedsSeedHash(t *testing.T) {
	// Output longer than one hash block exercises the counter increment.
	got, err := Generate([]byte("seed"), 100, sha1.New)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(got) != 100 {
		t.Fatalf("Generate returned %d bytes, want 100", len(got))
	}
}

func TestGenerateNegativeLength(t *testing.T) {
	if _, err := Generate([]byte("seed"), -1, sha1.New); err == nil {
		t.Fatal("expected error for negative length")
	}
}

func TestGenerateNamedUnknownHash(t *testing.T) {
	if _, err := GenerateNamed("MD4", []byte("seed"), 10); err == nil {
		t.Fatal("expected error for unknown hash method")
	}
}

func TestGenerateNamedSHA1(t *testing.T) {
	got, err := GenerateNamed("SHA-1", []byte("seed"), 10)
	if err != nil {
		t.Fatalf("GenerateNamed failed: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("GenerateNamed returned %d bytes, want 10", len(got))
	}
}
