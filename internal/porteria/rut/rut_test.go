package rut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"12.345.678-K":  "12345678k",
		"12345678k":     "12345678k",
		" 11111111-k ":  "11111111k",
		"9.999.999-9":   "99999999",
		"abc":           "",
		"":              "",
		"K":             "k",
		"１２3":           "3",
		"12-345/678 kK": "12345678kk",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"12.345.678-K", "x1y2z3k", ""} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}
