// Package derkey implements the minimal ASN.1 DER subset PKCS#1 needs —
// INTEGER and SEQUENCE, with long-form DER lengths — to encode and decode
// RSAPublicKey and RSAPrivateKey structures without pulling in a general
// purpose ASN.1 library.
package derkey

import (
	"fmt"
	"math/big"
)

const (
	tagInteger  = 0x02
	tagSequence = 0x30
)

// FormatError reports a malformed DER or PKCS#1 structure.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return "derkey: " + e.Msg }

func formatErrorf(format string, args ...interface{}) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// encodeLength appends the DER length encoding of n to dst.
func encodeLength(dst []byte, n int) []byte {
	if n < 0x80 {
		return append(dst, byte(n))
	}

	var lenBytes []byte
	for n > 0 {
		lenBytes = append([]byte{byte(n & 0xFF)}, lenBytes...)
		n >>= 8
	}
	dst = append(dst, 0x80|byte(len(lenBytes)))
	return append(dst, lenBytes...)
}

// encodeInteger DER-encodes x as a tagged INTEGER. x must be non-negative.
func encodeInteger(x *big.Int) []byte {
	raw := x.Bytes()
	if len(raw) == 0 {
		raw = []byte{0x00}
	}
	if raw[0]&0x80 != 0 {
		raw = append([]byte{0x00}, raw...)
	}

	out := []byte{tagInteger}
	out = encodeLength(out, len(raw))
	return append(out, raw...)
}

// encodeSequence DER-encodes contents as a tagged SEQUENCE.
func encodeSequence(contents []byte) []byte {
	out := []byte{tagSequence}
	out = encodeLength(out, len(contents))
	return append(out, contents...)
}

// readTagLength reads a DER tag-and-length header from data, returning the
// tag, the declared content length, and the remaining bytes after the
// header.
func readTagLength(data []byte) (tag byte, length int, rest []byte, err error) {
	if len(data) < 2 {
		return 0, 0, nil, formatErrorf("truncated tag/length header")
	}
	tag = data[0]
	first := data[1]
	data = data[2:]

	if first < 0x80 {
		length = int(first)
		return tag, length, data, nil
	}

	numBytes := int(first & 0x7F)
	if numBytes == 0 || numBytes > len(data) {
		return 0, 0, nil, formatErrorf("truncated long-form length")
	}
	length = 0
	for i := 0; i < numBytes; i++ {
		length = length<<8 | int(data[i])
	}
	return tag, length, data[numBytes:], nil
}

// readInteger reads a DER INTEGER from the front of data, returning its
// value and the remaining bytes.
func readInteger(data []byte) (*big.Int, []byte, error) {
	tag, length, rest, err := readTagLength(data)
	if err != nil {
		return nil, nil, err
	}
	if tag != tagInteger {
		return nil, nil, formatErrorf("expected INTEGER tag 0x%02x, got 0x%02x", tagInteger, tag)
	}
	if length > len(rest) {
		return nil, nil, formatErrorf("truncated INTEGER contents")
	}

	value := new(big.Int).SetBytes(rest[:length])
	return value, rest[length:], nil
}

// readSequence reads a DER SEQUENCE from the front of data, returning its
// contents and the bytes following the sequence.
func readSequence(data []byte) (contents, rest []byte, err error) {
	tag, length, body, err := readTagLength(data)
	if err != nil {
		return nil, nil, err
	}
	if tag != tagSequence {
		return nil, nil, formatErrorf("expected SEQUENCE tag 0x%02x, got 0x%02x", tagSequence, tag)
	}
	if length > len(body) {
		return nil, nil, formatErrorf("truncated SEQUENCE contents")
	}
	return body[:length], body[length:], nil
}

// EncodePublicKey DER-encodes an RSAPublicKey ::= SEQUENCE { n, e }.
func EncodePublicKey(n, e *big.Int) []byte {
	contents := append(encodeInteger(n), encodeInteger(e)...)
	return encodeSequence(contents)
}

// DecodePublicKey decodes an RSAPublicKey ::= SEQUENCE { n, e }.
func DecodePublicKey(data []byte) (n, e *big.Int, err error) {
	contents, _, err := readSequence(data)
	if err != nil {
		return nil, nil, err
	}
	n, contents, err = readInteger(contents)
	if err != nil {
		return nil, nil, formatErrorf("reading n: %v", err)
	}
	e, _, err = readInteger(contents)
	if err != nil {
		return nil, nil, formatErrorf("reading e: %v", err)
	}
	return n, e, nil
}

// PrivateKeyFields holds the eight PKCS#1 RSAPrivateKey components that
// follow the version field, in wire order.
type PrivateKeyFields struct {
	N, E, D, P, Q, Exp1, Exp2, Coef *big.Int
}

// EncodePrivateKey DER-encodes an RSAPrivateKey structure:
//
//	SEQUENCE { version=0, n, e, d, p, q, exp1, exp2, coef }
func EncodePrivateKey(f PrivateKeyFields) []byte {
	contents := encodeInteger(big.NewInt(0))
	for _, v := range []*big.Int{f.N, f.E, f.D, f.P, f.Q, f.Exp1, f.Exp2, f.Coef} {
		contents = append(contents, encodeInteger(v)...)
	}
	return encodeSequence(contents)
}

// DecodePrivateKey decodes an RSAPrivateKey structure. Any trailing
// components after coef (multi-prime "otherPrimeInfos", unused by this
// library) are accepted and ignored.
func DecodePrivateKey(data []byte) (PrivateKeyFields, error) {
	contents, _, err := readSequence(data)
	if err != nil {
		return PrivateKeyFields{}, err
	}

	version, contents, err := readInteger(contents)
	if err != nil {
		return PrivateKeyFields{}, formatErrorf("reading version: %v", err)
	}
	if version.Sign() != 0 {
		return PrivateKeyFields{}, formatErrorf("unsupported RSAPrivateKey version %s", version)
	}

	var fields [8]*big.Int
	names := [8]string{"n", "e", "d", "p", "q", "exp1", "exp2", "coef"}
	for i := range fields {
		fields[i], contents, err = readInteger(contents)
		if err != nil {
			return PrivateKeyFields{}, formatErrorf("reading %s: %v", names[i], err)
		}
	}

	return PrivateKeyFields{
		N: fields[0], E: fields[1], D: fields[2], P: fields[3],
		Q: fields[4], Exp1: fields[5], Exp2: fields[6], Coef: fields[7],
	}, nil
}
