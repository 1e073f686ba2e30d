// Package randnum draws cryptographically secure random bytes and bounded
// random integers for key generation and padding.
package randnum

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/go-rsa/rsa/common"
	"github.com/go-rsa/rsa/transform"
)

// ReadRandomBits returns exactly ceil(nbits/8) bytes read from a
// cryptographic source. When nbits isn't a whole number of bytes, the
// high-order byte has its upper (8 - nbits%8) bits masked to zero so the
// value fits in nbits bits.
//
// This clamps the high byte but does not force the top bit to 1:
// candidates drawn here may therefore occupy fewer than nbits bits.
func ReadRandomBits(nbits int) ([]byte, error) {
	if nbits <= 0 {
		return nil, fmt.Errorf("randnum: nbits must be positive, got %d", nbits)
	}

	nbytes, rbits := nbits/8, nbits%8
	buf := make([]byte, nbytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	if rbits == 0 {
		return buf, nil
	}

	high := make([]byte, 1)
	if _, err := rand.Read(high); err != nil {
		return nil, err
	}
	high[0] &= (1 << uint(rbits)) - 1

	return append(high, buf...), nil
}

// ReadRandomInt reads a random integer of approximately nbits bits.
func ReadRandomInt(nbits int) (*big.Int, error) {
	b, err := ReadRandomBits(nbits)
	if err != nil {
		return nil, err
	}
	return transform.BytesToInt(b), nil
}

// ReadRandomOddInt reads a random odd integer of approximately nbits bits.
func ReadRandomOddInt(nbits int) (*big.Int, error) {
	n, err := ReadRandomInt(nbits)
	if err != nil {
		return nil, err
	}
	return n.Or(n, big.NewInt(1)), nil
}

// RandInt returns a random integer x with 1 <= x <= maxValue, by rejection
// sampling bit_size(maxValue) bits until the draw lands in range. The
// closer maxValue is to 2^bitsize - 1, the fewer draws this needs.
func RandInt(maxValue *big.Int) (*big.Int, error) {
	if maxValue.Sign() <= 0 {
		return nil, fmt.Errorf("randnum: maxValue must be positive, got %s", maxValue)
	}

	bits := common.BitLen(maxValue)
	one := big.NewInt(1)
	for {
		value, err := ReadRandomInt(bits)
		if err != nil {
			return nil, err
		}
		if value.Cmp(one) >= 0 && value.Cmp(maxValue) <= 0 {
			return value, nil
		}
	}
}
