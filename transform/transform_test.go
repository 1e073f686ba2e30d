package transform

import (
	"bytes"
	"math/big"
	"testing"
)

func TestBytesToInt(t *testing.T) {
	cases := []struct {
		in   []byte
		want int64
	}{
		{nil, 0},
		{[]byte{}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x01, 0x00}, 256},
	}
	for _, c := range cases {
		got := BytesToInt(c.in)
		if got.Cmp(big.NewInt(c.want)) != 0 {
			t.Errorf("BytesToInt(%v) = %s, want %d", c.in, got, c.want)
		}
	}
}

func TestIntToBytes(t *testing.T) {
	got, err := IntToBytes(big.NewInt(1), 4)
	if err != nil {
		t.Fatalf("IntToBytes failed: %v", err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("IntToBytes(1, 4) = %v, want %v", got, want)
	}
}

func TestIntToBytesOverflow(t *testing.T) {
	if _, err := IntToBytes(big.NewInt(256), 1); err == nil {
		t.Fatal("expected overflow error, got nil")
	}
}

func TestIntToBytesNegative(t *testing.T) {
	if _, err := IntToBytes(big.NewInt(-1), 4); err == nil {
		t.Fatal("expected error for negative input, got nil")
	}
}

func TestRoundTrip(t *testing.T) {
	x := big.NewInt(1)
	x.Lsh(x, 1023)
	b, err := IntToBytes(x, 128)
	if err != nil {
		t.Fatalf("IntToBytes failed: %v", err)
	}
	if got := BytesToInt(b); got.Cmp(x) != 0 {
		t.Errorf("round trip mismatch: got %s, want %s", got, x)
	}
}
