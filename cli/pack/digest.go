package pack

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
)

// Format selects the digest set expected by the target package manager
// generation.
type Format int

const (
	// FormatModern targets rpm 4.14 and newer: the classic digests plus a
	// SHA256 header digest in the signature header and a SHA256 payload
	// digest in the main header.
	FormatModern Format = iota
	// FormatClassic targets older consumers: MD5 over header+payload,
	// SHA1 over the header, and the two size tags.
	FormatClassic
)

type digestSet struct {
	headerSHA256  bool
	payloadDigest bool
}

var digestsByFormat = map[Format]digestSet{
	FormatClassic: {},
	FormatModern:  {headerSHA256: true, payloadDigest: true},
}

// md5Sum computes MD5 over the concatenation of the passed byte ranges.
// The result is returned in a binary form.
func md5Sum(data ...[]byte) []byte {
	hasher := md5.New()
	for _, d := range data {
		hasher.Write(d)
	}

	return hasher.Sum(nil)
}

// md5Hex computes MD5 for the passed bytes.
// The result is returned in a hex form.
func md5Hex(data []byte) string {
	return fmt.Sprintf("%x", md5Sum(data))
}

// sha1Hex computes SHA1 for the passed bytes.
// The result is returned in a hex form.
func sha1Hex(data []byte) string {
	hasher := sha1.New()
	hasher.Write(data)

	return fmt.Sprintf("%x", hasher.Sum(nil))
}

// sha256Hex computes SHA256 for the passed bytes.
// The result is returned in a hex form.
func sha256Hex(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data)

	return fmt.Sprintf("%x", hasher.Sum(nil))
}
