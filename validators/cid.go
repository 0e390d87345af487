package validators

import (
	"fmt"

	cid "github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"

	"github.com/pilinsin/record-verse/record"
)

var cidFormat = cid.V1Builder{Codec: cid.DagCBOR, MhType: mh.SHA3_256}

// MakeCIDKey returns the CID under which val is stored.
func MakeCIDKey(val []byte) (string, error) {
	c, err := cidFormat.Sum(val)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// CID validates content-addressed records: the key path is the CID of the
// value.
type CID struct{}

func (CID) Validate(key string, val []byte) error {
	seg, err := firstSegment(key)
	if err != nil {
		return err
	}
	want, err := cid.Decode(seg)
	if err != nil {
		return fmt.Errorf("%w: %v", record.ErrInvalidMultihash, err)
	}

	got, err := want.Prefix().Sum(val)
	if err != nil {
		return fmt.Errorf("%w: %v", record.ErrInvalidRecord, err)
	}
	if !got.Equals(want) {
		return fmt.Errorf("%w: value does not match cid %s", record.ErrInvalidRecord, want)
	}
	return nil
}

// Select picks a value matching the key. All such values are equal.
func (v CID) Select(key string, vals [][]byte) (int, error) {
	if len(vals) == 0 {
		return 0, record.ErrEmptyCandidateSet
	}
	parse := func(b []byte) ([]byte, error) {
		return b, v.Validate(key, b)
	}
	return record.SelectMax(vals, parse, func(_, _ []byte) int { return 0 }), nil
}

func (CID) Type() string {
	return "cid"
}
