package record

import (
	"bytes"

	p2precord "github.com/libp2p/go-libp2p-record"
)

// Validator holds the logic of one namespace.
//
// Validate rejects a value that is malformed or unauthorized for key. It
// must not modify value and must be safe for concurrent use.
//
// Select returns the index of the best of values. It must accept values
// that would fail Validate, ranking them below valid ones, and its choice
// of value must not depend on the order of values.
type Validator interface {
	Validate(key string, value []byte) error
	Select(key string, values [][]byte) (int, error)
}

var (
	_ p2precord.Validator = Validator(nil)
	_ Validator           = p2precord.Validator(nil)
)

// SelectMax returns the index of the greatest value according to cmp after
// decoding each value with parse. Values parse rejects rank below every
// accepted value. Values that cmp reports equal, and values that all fail
// parse, are ordered by their raw bytes, so the chosen value does not depend
// on the order of values. values must not be empty.
func SelectMax[T any](values [][]byte, parse func([]byte) (T, error), cmp func(a, b T) int) int {
	best := -1
	var bestVal T
	var bestOK bool
	for i, v := range values {
		t, err := parse(v)
		ok := err == nil
		if best >= 0 {
			c := 0
			switch {
			case ok && !bestOK:
				c = 1
			case !ok && bestOK:
				c = -1
			case ok:
				c = cmp(t, bestVal)
			}
			if c == 0 {
				c = bytes.Compare(v, values[best])
			}
			if c <= 0 {
				continue
			}
		}
		best, bestVal, bestOK = i, t, ok
	}
	if best < 0 {
		return 0
	}
	return best
}
