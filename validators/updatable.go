package validators

import (
	"bytes"
	"fmt"
	"time"

	pv "github.com/pilinsin/record-verse"
	"github.com/pilinsin/record-verse/record"
)

type updatableData struct {
	Time  time.Time
	Value []byte
}

// MakeUpdatableValue stamps val with the current UTC time.
func MakeUpdatableValue(val []byte) ([]byte, error) {
	return makeUpdatableValue(time.Now(), val)
}

func makeUpdatableValue(t time.Time, val []byte) ([]byte, error) {
	return pv.Marshal(&updatableData{t.UTC(), val})
}

// UnmarshalUpdatableValue returns the payload and timestamp of a value.
func UnmarshalUpdatableValue(m []byte) ([]byte, time.Time, error) {
	ud, err := parseUpdatable(m)
	if err != nil {
		return nil, time.Time{}, err
	}
	return ud.Value, ud.Time, nil
}

func parseUpdatable(m []byte) (*updatableData, error) {
	ud := &updatableData{}
	if err := pv.Unmarshal(m, ud); err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrInvalidRecord, err)
	}
	if ud.Time.IsZero() {
		return nil, fmt.Errorf("%w: missing timestamp", record.ErrInvalidRecord)
	}
	if ud.Time.Location() != time.UTC {
		return nil, fmt.Errorf("%w: timestamp %s is not UTC", record.ErrInvalidRecord, ud.Time)
	}
	return ud, nil
}

// Updatable validates timestamped values. The latest value wins; equal
// timestamps fall back to the greatest payload.
type Updatable struct{}

func (Updatable) Validate(_ string, val []byte) error {
	_, err := parseUpdatable(val)
	return err
}

func (Updatable) Select(_ string, vals [][]byte) (int, error) {
	if len(vals) == 0 {
		return 0, record.ErrEmptyCandidateSet
	}
	return record.SelectMax(vals, parseUpdatable, func(a, b *updatableData) int {
		if c := a.Time.Compare(b.Time); c != 0 {
			return c
		}
		return bytes.Compare(a.Value, b.Value)
	}), nil
}

func (Updatable) Type() string {
	return "updatable"
}
