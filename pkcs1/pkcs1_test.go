package pkcs1

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-rsa/rsa"
)

func genKey(t *testing.T, nbits int) (*rsa.PublicKey, *rsa.PrivateKey) {
	t.Helper()
	pub, priv, err := rsa.NewKeys(nbits)
	if err != nil {
		t.Fatalf("NewKeys failed: %v", err)
	}
	return pub, priv
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	pub, priv := genKey(t, 1024)
	message := []byte("the quick brown fox jumps over the lazy dog")

	ciphertext, err := Encrypt(message, pub)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	got, err := Decrypt(ciphertext, priv)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(got, message) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, message)
	}
}

func TestEncryptMessageTooLong(t *testing.T) {
	pub, _ := genKey(t, 256)
	message := bytes.Repeat([]byte{0x41}, 200)

	if _, err := Encrypt(message, pub); err == nil {
		t.Fatal("expected OverflowError for oversized message")
	}
}

func TestDecryptRejectsWrongLength(t *testing.T) {
	_, priv := genKey(t, 256)
	if _, err := Decrypt([]byte{0x01, 0x02}, priv); err == nil {
		t.Fatal("expected DecryptionError for wrong-length ciphertext")
	}
}

func TestDecryptRejectsCorruptedPadding(t *testing.T) {
	pub, priv := genKey(t, 1024)

	// Flipping the trailing byte of a valid ciphertext should always be
	// rejected, surfaced only as the generic DecryptionError.
	tampered, err := Encrypt([]byte("hello"), pub)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	tampered[len(tampered)-1] ^= 0xff
	if _, err := Decrypt(tampered, priv); err == nil {
		t.Fatal("expected DecryptionError for corrupted ciphertext")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv := genKey(t, 1024)
	message := strings.NewReader("sign this message")

	sig, err := Sign(message, priv, "SHA-256")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	name, err := Verify(strings.NewReader("sign this message"), sig, pub)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if name != "SHA-256" {
		t.Fatalf("Verify returned hash %q, want SHA-256", name)
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	pub, priv := genKey(t, 1024)
	sig, err := SignBytes([]byte("original"), priv, "SHA-256")
	if err != nil {
		t.Fatalf("SignBytes failed: %v", err)
	}

	if _, err := Verify(strings.NewReader("tampered"), sig, pub); err == nil {
		t.Fatal("expected VerificationError for tampered message")
	}
}

func TestVerifyRejectsWrongLength(t *testing.T) {
	pub, _ := genKey(t, 256)
	if _, err := Verify(strings.NewReader("x"), []byte{0x01}, pub); err == nil {
		t.Fatal("expected VerificationError for wrong-length signature")
	}
}

func TestSignMessageTooLong(t *testing.T) {
	_, priv := genKey(t, 256)
	message := bytes.Repeat([]byte{0x41}, 200)

	if _, err := SignBytes(message, priv, "SHA3-512"); err == nil {
		t.Fatal("expected OverflowError for oversized digest info")
	}
}

func TestSignUnknownHash(t *testing.T) {
	_, priv := genKey(t, 1024)
	if _, err := SignBytes([]byte("x"), priv, "MD4"); err == nil {
		t.Fatal("expected ValueError for unknown hash method")
	}
}
