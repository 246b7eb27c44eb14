package convert

import "strings"

// Blank-node tokens admit only ASCII letters and digits; every other byte is
// rewritten as a fixed-width escape. Because the escape marker '_' is itself
// escaped, the mapping is injective over arbitrary byte strings: no two
// distinct raw ids can produce the same token.

const hexUpper = "0123456789ABCDEF"

var tokenSafe [256]bool

func init() {
	for b := 'a'; b <= 'z'; b++ {
		tokenSafe[b] = true
	}
	for b := 'A'; b <= 'Z'; b++ {
		tokenSafe[b] = true
	}
	for b := '0'; b <= '9'; b++ {
		tokenSafe[b] = true
	}
}

// SanitizeID maps an external node id to an internal blank-node token. The
// function is pure and deterministic; dedup and edge linkage depend on the
// same input producing the same token on every call and across runs.
//
// The hot path (ids that are already clean) allocates nothing. Sanitization
// runs once per id occurrence across tens of millions of rows, so this is
// direct byte classification rather than pattern matching.
func SanitizeID(id string) string {
	clean := true
	for i := 0; i < len(id); i++ {
		if !tokenSafe[id[i]] {
			clean = false
			break
		}
	}

	if clean {
		return id
	}

	var b strings.Builder
	b.Grow(len(id) + len(id)/2)

	for i := 0; i < len(id); i++ {
		c := id[i]
		if tokenSafe[c] {
			b.WriteByte(c)
			continue
		}

		b.WriteByte('_')
		b.WriteByte(hexUpper[c>>4])
		b.WriteByte(hexUpper[c&0x0F])
	}

	return b.String()
}
