package derkey

import (
	"math/big"
	"testing"
)

func TestPublicKeyRoundTrip(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 2048)
	n.Sub(n, big.NewInt(275))
	e := big.NewInt(65537)

	encoded := EncodePublicKey(n, e)
	gotN, gotE, err := DecodePublicKey(encoded)
	if err != nil {
		t.Fatalf("DecodePublicKey failed: %v", err)
	}
	if gotN.Cmp(n) != 0 || gotE.Cmp(e) != 0 {
		t.Fatalf("round trip mismatch: n=%s e=%s", gotN, gotE)
	}
}

func TestPublicKeyHighBitPadding(t *testing.T) {
	// 0xFF as the leading byte needs a 0x00 prefix to stay non-negative.
	n := big.NewInt(0xFF)
	e := big.NewInt(3)
	encoded := EncodePublicKey(n, e)

	gotN, gotE, err := DecodePublicKey(encoded)
	if err != nil {
		t.Fatalf("DecodePublicKey failed: %v", err)
	}
	if gotN.Cmp(n) != 0 || gotE.Cmp(e) != 0 {
		t.Fatalf("round trip mismatch: n=%s e=%s", gotN, gotE)
	}
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	f := PrivateKeyFields{
		N: big.NewInt(3233), E: big.NewInt(17), D: big.NewInt(2753),
		P: big.NewInt(61), Q: big.NewInt(53),
		Exp1: big.NewInt(53), Exp2: big.NewInt(49), Coef: big.NewInt(38),
	}
	encoded := EncodePrivateKey(f)

	got, err := DecodePrivateKey(encoded)
	if err != nil {
		t.Fatalf("DecodePrivateKey failed: %v", err)
	}
	for name, pair := range map[string][2]*big.Int{
		"n": {f.N, got.N}, "e": {f.E, got.E}, "d": {f.D, got.D},
		"p": {f.P, got.P}, "q": {f.Q, got.Q},
		"exp1": {f.Exp1, got.Exp1}, "exp2": {f.Exp2, got.Exp2}, "coef": {f.Coef, got.Coef},
	} {
		if pair[0].Cmp(pair[1]) != 0 {
			t.Errorf("field %s mismatch: want %s, got %s", name, pair[0], pair[1])
		}
	}
}

func TestDecodePrivateKeyTolerantOfTrailingComponents(t *testing.T) {
	f := PrivateKeyFields{
		N: big.NewInt(3233), E: big.NewInt(17), D: big.NewInt(2753),
		P: big.NewInt(61), Q: big.NewInt(53),
		Exp1: big.NewInt(53), Exp2: big.NewInt(49), Coef: big.NewInt(38),
	}
	encoded := EncodePrivateKey(f)

	// Splice in an extra trailing INTEGER inside the outer SEQUENCE to
	// simulate a multi-prime otherPrimeInfos tail.
	extra := encodeInteger(big.NewInt(7))
	_, length, body, err := readTagLength(encoded)
	if err != nil {
		t.Fatalf("readTagLength failed: %v", err)
	}
	newBody := append(append([]byte{}, body[:length]...), extra...)
	patched := append([]byte{tagSequence}, encodeLength(nil, len(newBody))...)
	patched = append(patched, newBody...)

	got, err := DecodePrivateKey(patched)
	if err != nil {
		t.Fatalf("DecodePrivateKey with trailing components failed: %v", err)
	}
	if got.N.Cmp(f.N) != 0 {
		t.Fatalf("n mismatch after trailing components: got %s, want %s", got.N, f.N)
	}
}

func TestDecodePrivateKeyRejectsBadVersion(t *testing.T) {
	contents := encodeInteger(big.NewInt(1)) // version must be 0
	for _, v := range []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4), big.NewInt(5), big.NewInt(6), big.NewInt(7), big.NewInt(8)} {
		contents = append(contents, encodeInteger(v)...)
	}
	encoded := encodeSequence(contents)

	if _, err := DecodePrivateKey(encoded); err == nil {
		t.Fatal("expected error for non-zero version")
	}
}

func TestDecodeRejectsWrongTag(t *testing.T) {
	if _, _, err := DecodePublicKey([]byte{0x31, 0x00}); err == nil {
		t.Fatal("expected error for wrong top-level tag")
	}
}

func TestDecodeRejectsTruncated(t *testing.T) {
	n := big.NewInt(12345)
	e := big.NewInt(3)
	encoded := EncodePublicKey(n, e)
	if _, _, err := DecodePublicKey(encoded[:len(encoded)-2]); err == nil {
		t.Fatal("expected error for truncated input")
	}
}
