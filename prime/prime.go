// Package prime implements Miller-Rabin primality testing and prime
// candidate search, calibrated per FIPS 186-4.
package prime

import (
	"math/big"
	"math/bits"

	"github.com/go-rsa/rsa/common"
	"github.com/go-rsa/rsa/randnum"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// RoundsFor returns the minimum number of Miller-Rabin rounds for an error
// probability of 2^-100, per NIST FIPS 186-4 Appendix C, Table C.3, keyed
// by the bit size of the candidate being tested.
func RoundsFor(nbits int) int {
	switch {
	case nbits >= 1536:
		return 3
	case nbits >= 1024:
		return 4
	case nbits >= 512:
		return 7
	default:
		return 10
	}
}

// decompose finds r and odd s such that n-1 = 2^r * s, by counting the
// trailing zero bits of n-1.
func decompose(nMinus1 *big.Int) (r uint, s *big.Int) {
	r = trailingZeroes(nMinus1)
	s = new(big.Int).Rsh(nMinus1, r)
	return r, s
}

// trailingZeroes counts the number of trailing zero bits in a non-negative
// big.Int by scanning its machine words, avoiding one bit-shift per bit.
func trailingZeroes(a *big.Int) uint {
	words := a.Bits()

	var i int
	for i < len(words) && words[i] == 0 {
		i++
	}
	if i == len(words) {
		return uint(i * bits.UintSize)
	}
	return uint(i*bits.UintSize) + uint(bits.TrailingZeros(uint(words[i])))
}

// MillerRabin reports whether n is probably prime. It runs k independent
// witness rounds; the probability of a false positive is at most 4^-k.
// 2 and 3 are reported prime; n < 2 and even n > 2 are reported composite
// without drawing any witness.
func MillerRabin(n *big.Int, k int) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(two) == 0 || n.Cmp(big.NewInt(3)) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	nMinus1 := new(big.Int).Sub(n, one)
	r, s := decompose(nMinus1)

	// a is drawn uniformly from [2, n-2]: RandInt gives x in [1, n-3], so
	// a = x+1 covers exactly that range.
	witnessMax := new(big.Int).Sub(n, big.NewInt(3))

	for i := 0; i < k; i++ {
		a, err := randnum.RandInt(witnessMax)
		if err != nil {
			return false
		}
		a.Add(a, one)

		x := new(big.Int).Exp(a, s, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}

		composite := true
		for j := uint(0); j < r-1; j++ {
			x.Exp(x, two, n)
			if x.Cmp(nMinus1) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}

// IsPrime reports whether number is prime, dispatching small and even
// values directly and falling back to Miller-Rabin otherwise.
func IsPrime(number *big.Int) bool {
	if number.Cmp(two) < 0 {
		return false
	}
	if number.Cmp(two) == 0 || number.Cmp(big.NewInt(3)) == 0 {
		return true
	}
	if number.Bit(0) == 0 {
		return false
	}
	return MillerRabin(number, RoundsFor(common.BitLen(number)))
}

// GetPrime returns a prime that fits in nbits bits by repeatedly drawing a
// random odd candidate and testing it for primality. It terminates with
// probability 1 under a sound RNG.
func GetPrime(nbits int) (*big.Int, error) {
	for {
		candidate, err := randnum.ReadRandomOddInt(nbits)
		if err != nil {
			return nil, err
		}
		if IsPrime(candidate) {
			return candidate, nil
		}
	}
}

// GCD returns the greatest common divisor of p and q.
func GCD(p, q *big.Int) *big.Int {
	p, q = new(big.Int).Set(p), new(big.Int).Set(q)
	for q.Sign() != 0 {
		p, q = q, new(big.Int).Mod(p, q)
	}
	return p
}

// AreRelativelyPrime reports whether a and b share no common factor.
func AreRelativelyPrime(a, b *big.Int) bool {
	return GCD(a, b).Cmp(one) == 0
}
