// Package keycmp compares key-bytes extracted from a join column, either
// lexicographically or as signed 64-bit integers.
package keycmp

import (
	"bytes"
	"strconv"

	"github.com/grailbio/base/errors"
)

// Mode selects how Compare interprets its operands.
type Mode int

const (
	// Bytes compares operands as raw lexicographic byte sequences.
	Bytes Mode = iota
	// Numeric parses both operands as signed 64-bit integers before
	// comparing. A parse failure is fatal (spec: Parse-error).
	Numeric
)

// Compare returns a negative number if a < b, zero if a == b, and a
// positive number if a > b, under mode. In Numeric mode a parse failure on
// either operand is returned as an error; callers must treat this as fatal,
// since it indicates the input isn't actually sorted the way the caller
// claimed.
func Compare(mode Mode, a, b []byte) (int, error) {
	if mode == Bytes {
		return bytes.Compare(a, b), nil
	}
	av, err := parseInt(a)
	if err != nil {
		return 0, err
	}
	bv, err := parseInt(b)
	if err != nil {
		return 0, err
	}
	switch {
	case av < bv:
		return -1, nil
	case av > bv:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal reports whether a and b compare equal under mode.
func Equal(mode Mode, a, b []byte) (bool, error) {
	c, err := Compare(mode, a, b)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

func parseInt(b []byte) (int64, error) {
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, errors.E(err, "keycmp: not a signed 64-bit integer", string(b))
	}
	return v, nil
}
