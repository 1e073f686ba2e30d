// Package common implements the number-theoretic primitives shared by the
// rest of the library: bit/byte sizing, the extended Euclidean algorithm,
// modular inverse, and Chinese Remainder reconstruction.
package common

import (
	"fmt"
	"math/big"
)

// NotRelativePrimeError is returned by Inverse when gcd(a, b) != 1, so no
// multiplicative inverse exists.
type NotRelativePrimeError struct {
	A, B, D *big.Int
}

func (e *NotRelativePrimeError) Error() string {
	return fmt.Sprintf("%s and %s are not relatively prime, divider=%s", e.A, e.B, e.D)
}

// BitLen returns the minimum number of bits needed to represent |x|.
// BitLen(0) is 0.
func BitLen(x *big.Int) int {
	return x.BitLen()
}

// ByteLen returns the number of bytes needed to hold x, rounded up.
func ByteLen(x *big.Int) int {
	return (BitLen(x) + 7) / 8
}

// ExtendedGCD returns (g, u, v) such that g = gcd(a, b) = u*a + v*b, using
// the standard iterative coefficient-tracking Euclidean recurrence.
func ExtendedGCD(a, b *big.Int) (g, u, v *big.Int) {
	x, y := big.NewInt(0), big.NewInt(1)
	lastX, lastY := big.NewInt(1), big.NewInt(0)

	a = new(big.Int).Set(a)
	b = new(big.Int).Set(b)
	q, r := new(big.Int), new(big.Int)

	for b.Sign() != 0 {
		q.QuoRem(a, b, r)
		a, b = b, r
		r = new(big.Int)

		x, lastX = new(big.Int).Sub(lastX, new(big.Int).Mul(q, x)), x
		y, lastY = new(big.Int).Sub(lastY, new(big.Int).Mul(q, y)), y
	}

	return a, lastX, lastY
}

// Inverse returns x^-1 mod n in the canonical range [0, n), or a
// *NotRelativePrimeError if x and n are not coprime.
func Inverse(x, n *big.Int) (*big.Int, error) {
	g, a, _ := ExtendedGCD(x, n)
	if g.Cmp(big.NewInt(1)) != 0 {
		return nil, &NotRelativePrimeError{A: x, B: n, D: g}
	}
	return a.Mod(a, n), nil
}

// CRT reconstructs the unique x in [0, prod(moduli)) such that
// x = residues[i] (mod moduli[i]) for every i. The moduli are assumed to be
// pairwise coprime; this is not verified.
func CRT(residues, moduli []*big.Int) (*big.Int, error) {
	prod := big.NewInt(1)
	for _, m := range moduli {
		prod.Mul(prod, m)
	}

	total := big.NewInt(0)
	for i, m := range moduli {
		p := new(big.Int).Div(prod, m)
		pInv, err := Inverse(p, m)
		if err != nil {
			return nil, err
		}
		term := new(big.Int).Mul(residues[i], pInv)
		term.Mul(term, p)
		total.Add(total, term)
	}

	return total.Mod(total, prod), nil
}
