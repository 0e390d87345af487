package validators

import (
	"bytes"

	"github.com/pilinsin/record-verse/record"
)

// Simple accepts every value and selects the greatest one bytewise.
type Simple struct{}

func (Simple) Validate(string, []byte) error {
	return nil
}

func (Simple) Select(_ string, vals [][]byte) (int, error) {
	if len(vals) == 0 {
		return 0, record.ErrEmptyCandidateSet
	}
	return record.SelectMax(vals, raw, bytes.Compare), nil
}

func (Simple) Type() string {
	return "simple"
}

// Const accepts every value for a write-once key. Peers holding different
// values converge on the smallest one bytewise.
type Const struct{}

func (Const) Validate(string, []byte) error {
	return nil
}

func (Const) Select(_ string, vals [][]byte) (int, error) {
	if len(vals) == 0 {
		return 0, record.ErrEmptyCandidateSet
	}
	return record.SelectMax(vals, raw, reverse(bytes.Compare)), nil
}

func (Const) Type() string {
	return "const"
}
