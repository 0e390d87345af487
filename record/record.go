package record

import (
	"bytes"
	"fmt"
	"time"

	p2precord "github.com/libp2p/go-libp2p-record"
	recpb "github.com/libp2p/go-libp2p-record/pb"
)

// Record is a key/value pair exchanged between peers. Author and Timestamp
// are metadata set by MakePutRecord and are not interpreted by validators.
type Record struct {
	Key       string
	Value     []byte
	Author    string
	Timestamp time.Time
}

// MakePutRecord builds a Record stamped with the current UTC time.
func MakePutRecord(key string, value []byte, author ...string) *Record {
	r := &Record{Key: key, Value: value, Timestamp: time.Now().UTC()}
	if len(author) > 0 {
		r.Author = author[0]
	}
	return r
}

// Equal compares key, value and author. Timestamps are ignored.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Key == other.Key && bytes.Equal(r.Value, other.Value) && r.Author == other.Author
}

func (r *Record) String() string {
	if r == nil {
		return "Record(nil)"
	}
	return fmt.Sprintf("Record(key=%q, value_len=%d, author=%q)", r.Key, len(r.Value), r.Author)
}

// ToPB converts r into the go-libp2p-record wire record. The timestamp is
// carried in TimeReceived.
func (r *Record) ToPB() *recpb.Record {
	pbr := p2precord.MakePutRecord(r.Key, r.Value)
	if !r.Timestamp.IsZero() {
		pbr.TimeReceived = r.Timestamp.UTC().Format(time.RFC3339Nano)
	}
	return pbr
}

// FromPB converts a wire record. An empty TimeReceived leaves the timestamp zero.
func FromPB(pbr *recpb.Record) (*Record, error) {
	if pbr == nil {
		return nil, fmt.Errorf("%w: nil record", ErrInvalidRecord)
	}
	r := &Record{Key: string(pbr.GetKey()), Value: pbr.GetValue()}
	if ts := pbr.GetTimeReceived(); ts != "" {
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q: %v", ErrInvalidRecord, ts, err)
		}
		r.Timestamp = t.UTC()
	}
	return r, nil
}
