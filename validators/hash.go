package validators

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"

	pv "github.com/pilinsin/record-verse"
	"github.com/pilinsin/record-verse/record"
)

type hashData struct {
	BaseHash []byte
	Salt     []byte
	Value    []byte
}

// MakeHashKey derives the key path of a hash record from a secret and a salt.
func MakeHashKey(bHash, salt []byte) string {
	hash := argon2.IDKey(bHash, salt, 1, 64*1024, 4, 32)
	return base64.URLEncoding.EncodeToString(hash)
}

// MakeHashValue builds the value of a hash record.
func MakeHashValue(bHash, salt, val []byte) ([]byte, error) {
	return pv.Marshal(&hashData{bHash, salt, val})
}

// UnmarshalHashValue returns the payload of a hash record value.
func UnmarshalHashValue(m []byte) ([]byte, error) {
	hd := &hashData{}
	if err := pv.Unmarshal(m, hd); err != nil {
		return nil, err
	}
	return hd.Value, nil
}

// Hash validates records whose key path is MakeHashKey of the secret and
// salt carried in the value. Only holders of the secret can write the key.
type Hash struct{}

func (Hash) parse(key string, val []byte) (*hashData, error) {
	seg, err := firstSegment(key)
	if err != nil {
		return nil, err
	}
	hd := &hashData{}
	if err := pv.Unmarshal(val, hd); err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrInvalidRecord, err)
	}
	if MakeHashKey(hd.BaseHash, hd.Salt) != seg {
		return nil, fmt.Errorf("%w: hash does not match key", record.ErrInvalidRecord)
	}
	return hd, nil
}

func (v Hash) Validate(key string, val []byte) error {
	_, err := v.parse(key, val)
	return err
}

// Select prefers valid values, then the greatest payload.
func (v Hash) Select(key string, vals [][]byte) (int, error) {
	if len(vals) == 0 {
		return 0, record.ErrEmptyCandidateSet
	}
	parse := func(b []byte) (*hashData, error) {
		return v.parse(key, b)
	}
	return record.SelectMax(vals, parse, func(a, b *hashData) int {
		return bytes.Compare(a.Value, b.Value)
	}), nil
}

func (Hash) Type() string {
	return "hash"
}
