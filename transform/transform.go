// Package transform converts between big-endian byte strings and the
// arbitrary-precision integers the rest of the library operates on.
package transform

import (
	"fmt"
	"math/big"
)

// BytesToInt decodes b as a big-endian unsigned integer. An empty slice
// decodes to zero.
func BytesToInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// IntToBytes encodes the non-negative integer x as a big-endian unsigned
// byte string, left-padded with zero bytes to exactly fillSize bytes. It
// fails if x needs more than fillSize bytes to represent.
func IntToBytes(x *big.Int, fillSize int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("transform: cannot encode negative integer %s", x)
	}

	raw := x.Bytes()
	if len(raw) > fillSize {
		return nil, fmt.Errorf("transform: %d bytes needed to encode %s, but fill size is %d", len(raw), x, fillSize)
	}

	out := make([]byte, fillSize)
	copy(out[fillSize-len(raw):], raw)
	return out, nil
}
