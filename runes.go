// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package calc

const (
	// EOF is a sentinel for end of input
	EOF rune = rune(-1)
)

// isdigit reports whether ch is an ASCII decimal digit.
func isdigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// islower reports whether ch is a lowercase ASCII letter.
// Identifiers must start with one of these.
func islower(ch rune) bool {
	return 'a' <= ch && ch <= 'z'
}

// isident reports whether ch may continue an identifier.
func isident(ch rune) bool {
	return islower(ch) || isdigit(ch) || ch == '_'
}
