// Package mgf1 implements the MGF1 mask generation function from PKCS#1
// (RFC 8017, appendix B.2.1): stretching a seed to an arbitrary output
// length. PKCS#1 v1.5 encryption and signing (the pkcs1 package) don't
// need it themselves — MGF1 backs OAEP and PSS instead — but it's exposed
// here as a building block for callers assembling those schemes.
package mgf1

import (
	"crypto"
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/binary"
	"fmt"
	"hash"

	// registers crypto.SHA3_256/384/512 with the Hash table below.
	_ "golang.org/x/crypto/sha3"
)

// counterBits is the width of the MGF1 block counter; the largest output
// length Generate accepts is therefore 2^counterBits * hLen, per the RFC's
// overflow check on the counter.
const counterBits = 32

// HashMethods maps the PKCS#1 hash method names this library recognizes to
// their crypto.Hash identifiers, the same set pkcs1 uses for signature
// digests, with SHA3 wired in via the same blank-import pattern.
var HashMethods = map[string]crypto.Hash{
	"MD5":       crypto.MD5,
	"SHA-1":     crypto.SHA1,
	"SHA-224":   crypto.SHA224,
	"SHA-256":   crypto.SHA256,
	"SHA-384":   crypto.SHA384,
	"SHA-512":   crypto.SHA512,
	"SHA3-256":  crypto.SHA3_256,
	"SHA3-384":  crypto.SHA3_384,
	"SHA3-512":  crypto.SHA3_512,
}

// Generate produces a length-byte mask from seed using MGF1 with the given
// hash constructor, per RFC 8017 appendix B.2.1.
func Generate(seed []byte, length int, newHash func() hash.Hash) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("mgf1: negative length %d", length)
	}

	h := newHash()
	hLen := h.Size()

	maxLen := uint64(hLen) << counterBits
	if uint64(length) > maxLen {
		return nil, fmt.Errorf("mgf1: mask too long (%d bytes) for hash output size %d", length, hLen)
	}

	out := make([]byte, 0, length+hLen)
	var counter uint32
	counterBytes := make([]byte, 4)

	for len(out) < length {
		h.Reset()
		h.Write(seed)
		binary.BigEndian.PutUint32(counterBytes, counter)
		h.Write(counterBytes)
		out = h.Sum(out)
		counter++
	}

	return out[:length], nil
}

// GenerateNamed looks up hashName in HashMethods and calls Generate with
// its constructor.
func GenerateNamed(hashName string, seed []byte, length int) ([]byte, error) {
	h, ok := HashMethods[hashName]
	if !ok {
		return nil, fmt.Errorf("mgf1: unknown hash method %q", hashName)
	}
	if !h.Available() {
		return nil, fmt.Errorf("mgf1: hash method %q not linked into binary", hashName)
	}
	return Generate(seed, length, h.New)
}
