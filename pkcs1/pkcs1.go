// Package pkcs1 implements PKCS#1 v1.5 encryption and signature padding
// on top of the root rsa package's blinded key operations.
package pkcs1

import (
	"crypto"
	_ "crypto/md5"
	"crypto/rand"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"crypto/subtle"
	"fmt"
	"hash"
	"io"
	"math/big"

	_ "golang.org/x/crypto/sha3"

	"github.com/go-rsa/rsa"
	"github.com/go-rsa/rsa/common"
	"github.com/go-rsa/rsa/transform"
)

// CryptoError is the base type for this package's error values. Most
// operations return one of the named aliases below rather than CryptoError
// directly.
type CryptoError struct {
	Msg string
}

func (e *CryptoError) Error() string { return e.Msg }

// OverflowError reports a message too long for the key's modulus.
type OverflowError struct{ CryptoError }

// DecryptionError reports a PKCS#1 decryption failure. Its message is
// always the same regardless of cause, so that a caller cannot use error
// text to distinguish padding failures from other faults (a Bleichenbacher
// oracle).
type DecryptionError struct{ CryptoError }

func newDecryptionError() *DecryptionError {
	return &DecryptionError{CryptoError{Msg: "Decryption failed"}}
}

// VerificationError reports a PKCS#1 signature verification failure.
type VerificationError struct{ CryptoError }

func newVerificationError() *VerificationError {
	return &VerificationError{CryptoError{Msg: "Verification failed"}}
}

// ValueError reports an invalid argument, such as an unsupported hash name.
type ValueError struct{ CryptoError }

func newValueError(format string, args ...interface{}) *ValueError {
	return &ValueError{CryptoError{Msg: fmt.Sprintf(format, args...)}}
}

// hashInfo pairs a stdlib hash constructor with the DER-encoded DigestInfo
// prefix PKCS#1 signing embeds ahead of the raw digest.
type hashInfo struct {
	newHash func() hash.Hash
	asn1Prefix []byte
}

// hashMethods is the set of digest algorithms this package signs and
// verifies with. The ASN.1 prefixes are the DigestInfo SEQUENCE headers
// from RFC 8017 appendix B, excluding the digest bytes themselves.
var hashMethods = map[string]hashInfo{
	"MD5": {crypto.MD5.New, []byte{
		0x30, 0x20, 0x30, 0x0c, 0x06, 0x08, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x02, 0x05, 0x05, 0x00,
		0x04, 0x10,
	}},
	"SHA-1": {crypto.SHA1.New, []byte{
		0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02, 0x1a, 0x05, 0x00, 0x04, 0x14,
	}},
	"SHA-224": {crypto.SHA224.New, []byte{
		0x30, 0x2d, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x04, 0x05,
		0x00, 0x04, 0x1c,
	}},
	"SHA-256": {crypto.SHA256.New, []byte{
		0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05,
		0x00, 0x04, 0x20,
	}},
	"SHA-384": {crypto.SHA384.New, []byte{
		0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02, 0x05,
		0x00, 0x04, 0x30,
	}},
	"SHA-512": {crypto.SHA512.New, []byte{
		0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03, 0x05,
		0x00, 0x04, 0x40,
	}},
	"SHA3-256": {crypto.SHA3_256.New, []byte{
		0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x08, 0x05,
		0x00, 0x04, 0x20,
	}},
	"SHA3-384": {crypto.SHA3_384.New, []byte{
		0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x09, 0x05,
		0x00, 0x04, 0x30,
	}},
	"SHA3-512": {crypto.SHA3_512.New, []byte{
		0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x0a, 0x05,
		0x00, 0x04, 0x40,
	}},
}

// HashNames returns the supported digest algorithm names, for CLI help
// text and similar.
func HashNames() []string {
	names := make([]string, 0, len(hashMethods))
	for name := range hashMethods {
		names = append(names, name)
	}
	return names
}

func findHash(hashName string) (hashInfo, error) {
	info, ok := hashMethods[hashName]
	if !ok {
		return hashInfo{}, newValueError("unknown hash method %q", hashName)
	}
	return info, nil
}

// digest hashes every byte message reads until EOF.
func digest(newHash func() hash.Hash, message io.Reader) ([]byte, error) {
	h := newHash()
	buf := make([]byte, 1024)
	for {
		n, err := message.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return h.Sum(nil), nil
}

// padForEncryption builds a type-02 PKCS#1 block:
//
//	0x00 0x02 <random nonzero padding, >= 8 bytes> 0x00 <message>
func padForEncryption(message []byte, keyBytes int) ([]byte, error) {
	msgLen := len(message)
	// 11 bytes of required overhead: 0x00 0x02 ... 0x00
	if msgLen > keyBytes-11 {
		return nil, &OverflowError{CryptoError{
			Msg: fmt.Sprintf("%d bytes needed for message, but there is only space for %d", msgLen, keyBytes-11),
		}}
	}

	padLen := keyBytes - msgLen - 3
	padding := make([]byte, 0, padLen)
	for len(padding) < padLen {
		// Over-sample slightly so that filtering out zero bytes rarely
		// leaves the batch short.
		chunk := make([]byte, padLen-len(padding)+5)
		if _, err := rand.Read(chunk); err != nil {
			return nil, err
		}
		for _, b := range chunk {
			if b != 0x00 && len(padding) < padLen {
				padding = append(padding, b)
			}
		}
	}

	block := make([]byte, 0, keyBytes)
	block = append(block, 0x00, 0x02)
	block = append(block, padding...)
	block = append(block, 0x00)
	block = append(block, message...)
	return block, nil
}

// padForSigning builds a type-01 PKCS#1 block:
//
//	0x00 0x01 <0xff padding> 0x00 <message>
func padForSigning(message []byte, keyBytes int) ([]byte, error) {
	msgLen := len(message)
	if msgLen > keyBytes-11 {
		return nil, &OverflowError{CryptoError{
			Msg: fmt.Sprintf("%d bytes needed for message, but there is only space for %d", msgLen, keyBytes-11),
		}}
	}

	padLen := keyBytes - msgLen - 3
	block := make([]byte, 0, keyBytes)
	block = append(block, 0x00, 0x01)
	for i := 0; i < padLen; i++ {
		block = append(block, 0xff)
	}
	block = append(block, 0x00)
	block = append(block, message...)
	return block, nil
}

// Encrypt PKCS#1 v1.5 encrypts message under pub.
func Encrypt(message []byte, pub *rsa.PublicKey) ([]byte, error) {
	keyBytes := common.ByteLen(pub.N())
	padded, err := padForEncryption(message, keyBytes)
	if err != nil {
		return nil, err
	}

	m := transform.BytesToInt(padded)
	c := new(big.Int).Exp(m, pub.E(), pub.N())
	return transform.IntToBytes(c, keyBytes)
}

// Decrypt PKCS#1 v1.5 decrypts ciphertext under priv. It always returns the
// same DecryptionError on any failure — malformed padding, wrong length,
// whatever — decoded in constant time so that timing cannot leak which
// failure occurred (a defense against Bleichenbacher-style oracles).
func Decrypt(ciphertext []byte, priv *rsa.PrivateKey) ([]byte, error) {
	keyBytes := common.ByteLen(priv.N())
	if len(ciphertext) != keyBytes {
		return nil, newDecryptionError()
	}

	c := transform.BytesToInt(ciphertext)
	m, err := rsa.Decrypt(priv, c)
	if err != nil {
		return nil, newDecryptionError()
	}

	cleartext, err := transform.IntToBytes(m, keyBytes)
	if err != nil {
		return nil, newDecryptionError()
	}

	// Scan the whole block unconditionally; never branch or return early
	// on the content of cleartext before this point is decided.
	goodPrefix := subtle.ConstantTimeByteEq(cleartext[0], 0x00) & subtle.ConstantTimeByteEq(cleartext[1], 0x02)

	sepIndex := -1
	foundSep := 0
	for i := 2; i < len(cleartext); i++ {
		isZero := subtle.ConstantTimeByteEq(cleartext[i], 0x00)
		isFirstZero := isZero & (1 - foundSep)
		sepIndex = subtle.ConstantTimeSelect(isFirstZero, i, sepIndex)
		foundSep |= isZero
	}

	atLeastEightPad := subtle.ConstantTimeLessOrEq(10, sepIndex)

	ok := goodPrefix & foundSep & atLeastEightPad
	if subtle.ConstantTimeSelect(ok, 1, 0) != 1 {
		return nil, newDecryptionError()
	}

	return cleartext[sepIndex+1:], nil
}

// Sign computes a PKCS#1 v1.5 signature over message (read fully) using
// the named hash algorithm and priv.
func Sign(message io.Reader, priv *rsa.PrivateKey, hashName string) ([]byte, error) {
	info, err := findHash(hashName)
	if err != nil {
		return nil, err
	}

	hashed, err := digest(info.newHash, message)
	if err != nil {
		return nil, err
	}

	return signDigest(hashed, info, priv)
}

// SignBytes is Sign for an already-materialized message.
func SignBytes(message []byte, priv *rsa.PrivateKey, hashName string) ([]byte, error) {
	info, err := findHash(hashName)
	if err != nil {
		return nil, err
	}
	h := info.newHash()
	h.Write(message)
	return signDigest(h.Sum(nil), info, priv)
}

func signDigest(hashed []byte, info hashInfo, priv *rsa.PrivateKey) ([]byte, error) {
	asn1 := append(append([]byte{}, info.asn1Prefix...), hashed...)

	keyBytes := common.ByteLen(priv.N())
	padded, err := padForSigning(asn1, keyBytes)
	if err != nil {
		return nil, err
	}

	m := transform.BytesToInt(padded)
	s, err := rsa.SignDigest(priv, m)
	if err != nil {
		return nil, err
	}
	return transform.IntToBytes(s, keyBytes)
}

// Verify checks a PKCS#1 v1.5 signature over message (read fully) against
// pub, returning the name of the hash algorithm used on success.
func Verify(message io.Reader, signature []byte, pub *rsa.PublicKey) (string, error) {
	keyBytes := common.ByteLen(pub.N())
	if len(signature) != keyBytes {
		return "", newVerificationError()
	}

	s := transform.BytesToInt(signature)
	m := new(big.Int).Exp(s, pub.E(), pub.N())
	cleartext, err := transform.IntToBytes(m, keyBytes)
	if err != nil {
		return "", newVerificationError()
	}

	sepIndex := -1
	if cleartext[0] != 0x00 || cleartext[1] != 0x01 {
		return "", newVerificationError()
	}
	for i := 2; i < len(cleartext); i++ {
		if cleartext[i] == 0x00 {
			sepIndex = i
			break
		}
		if cleartext[i] != 0xff {
			return "", newVerificationError()
		}
	}
	if sepIndex < 0 {
		return "", newVerificationError()
	}

	// Reconstruct the full expected EM for every candidate hash and
	// compare in constant time, rather than parsing the DigestInfo ASN.1
	// out of the signature and branching on the result: a candidate
	// chosen by the signature's own framing is an attacker-controlled
	// branch condition.
	buf, err := readAll(message)
	if err != nil {
		return "", newVerificationError()
	}

	for name, info := range hashMethods {
		h := info.newHash()
		h.Write(buf)
		want, err := padForSigning(append(append([]byte{}, info.asn1Prefix...), h.Sum(nil)...), keyBytes)
		if err != nil {
			continue
		}
		if subtle.ConstantTimeCompare(want, cleartext) == 1 {
			return name, nil
		}
	}
	return "", newVerificationError()
}

func readAll(r io.Reader) ([]byte, error) {
	var out []byte
	buf := make([]byte, 1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
