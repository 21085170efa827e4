// Package rut normalizes Chilean national identifiers (RUT) the way they are
// stored: digits plus an optional lowercase "k" check character, no dots or
// dashes.
package rut

import "strings"

// Normalize keeps only digits and k/K, then lowercases. Every input maps to
// some output, possibly the empty string.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteByte('k')
		}
	}
	return b.String()
}
