// Package shellquote implements the Shell Escaper (C2): quoting argument strings safely
// for POSIX shell so the executor can hand a composed command directly to `/bin/sh -c`
// (§4.2).
package shellquote

import (
	"strings"

	"github.com/alessio/shellescape"
)

// Quote produces a POSIX-sh-safe single token for s. The empty string becomes `''`;
// strings without shell metacharacters are returned verbatim; otherwise the result is
// wrapped in single quotes with embedded single quotes escaped via the `'\''` idiom.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if shellescape.Quote(s) == s {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteJoin shell-escapes each argument and joins them with spaces, as used to compose
// an invocation's `exec` binding (§4.6a) and the self-regenerate command (§4.8e).
func QuoteJoin(args ...string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}
