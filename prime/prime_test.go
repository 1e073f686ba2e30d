package prime

import (
	"math/big"
	"testing"
)

func TestRoundsFor(t *testing.T) {
	cases := []struct {
		bits int
		want int
	}{
		{256, 10},
		{511, 10},
		{512, 7},
		{1023, 7},
		{1024, 4},
		{1535, 4},
		{1536, 3},
		{4096, 3},
	}
	for _, c := range cases {
		if got := RoundsFor(c.bits); got != c.want {
			t.Errorf("RoundsFor(%d) = %d, want %d", c.bits, got, c.want)
		}
	}
}

func TestIsPrimeKnownValues(t *testing.T) {
	primes := []int64{2, 3, 5, 7, 11, 13, 97, 104729}
	for _, p := range primes {
		if !IsPrime(big.NewInt(p)) {
			t.Errorf("IsPrime(%d) = false, want true", p)
		}
	}

	composites := []int64{0, 1, 4, 6, 8, 9, 15, 21, 25, 104728}
	for _, c := range composites {
		if IsPrime(big.NewInt(c)) {
			t.Errorf("IsPrime(%d) = true, want false", c)
		}
	}
}

func TestGetPrimeBitSize(t *testing.T) {
	for _, bits := range []int{64, 128} {
		p, err := GetPrime(bits)
		if err != nil {
			t.Fatalf("GetPrime(%d) failed: %v", bits, err)
		}
		if !IsPrime(p) {
			t.Fatalf("GetPrime(%d) returned non-prime %s", bits, p)
		}
		if p.BitLen() > bits {
			t.Fatalf("GetPrime(%d) returned %d-bit value %s", bits, p.BitLen(), p)
		}
	}
}

func TestGCD(t *testing.T) {
	if got := GCD(big.NewInt(48), big.NewInt(180)); got.Cmp(big.NewInt(12)) != 0 {
		t.Errorf("GCD(48,180) = %s, want 12", got)
	}
}

func TestAreRelativelyPrime(t *testing.T) {
	if !AreRelativelyPrime(big.NewInt(2), big.NewInt(3)) {
		t.Error("AreRelativelyPrime(2,3) = false, want true")
	}
	if AreRelativelyPrime(big.NewInt(2), big.NewInt(4)) {
		t.Error("AreRelativelyPrime(2,4) = true, want false")
	}
}
