// Package fingerprint implements C3: MD5-based content hashing used to derive stable,
// collision-resistant node names from opaque strings, and to gate plan regeneration
// (§3 "Configuration Fingerprint", §4.3).
//
// The algorithm is pinned to MD5 by the specification itself ("The algorithm is fixed so
// that regeneration of the same input yields bit-identical plan files"); this is the one
// place in the module where the standard library is used directly rather than a
// third-party hashing library, because no substitution is meaningful here (§9).
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
)

// Hash returns the 32-lowercase-hex-character MD5 digest of the UTF-8 bytes of s.
func Hash(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Of hashes the concatenation of parts joined by sep, e.g. Of(" ", exec, arg1, arg2)
// hashes a key of the form "exec + \" \" + joined-args" (§3 "Paths").
func Of(sep string, parts ...string) string {
	joined := ""
	for i, p := range parts {
		if i > 0 {
			joined += sep
		}
		joined += p
	}
	return Hash(joined)
}
