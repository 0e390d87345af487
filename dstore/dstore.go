// Package dstore guards a go-datastore with a record validator.
package dstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	ds "github.com/ipfs/go-datastore"
	p2precord "github.com/libp2p/go-libp2p-record"
	"go.uber.org/zap"

	"github.com/pilinsin/record-verse/record"
)

// Datastore validates values on Put and Get. When a key already holds a
// value, Put keeps whichever of the two the validator selects.
//
// Datastore keys are cleaned by ds.NewKey, so record keys must already be in
// clean form ("/ns/path" without empty or dot segments).
type Datastore struct {
	ds.Datastore
	v   record.Validator
	log *zap.Logger

	putMu sync.Mutex
}

// New wraps d. log may be nil.
func New(d ds.Datastore, v record.Validator, log *zap.Logger) *Datastore {
	if log == nil {
		log = zap.NewNop()
	}
	return &Datastore{Datastore: d, v: v, log: log}
}

// Put stores value if it is valid and preferred over the stored value. If
// the stored value wins, Put returns *p2precord.ErrBetterRecord holding it.
func (d *Datastore) Put(ctx context.Context, key ds.Key, value []byte) error {
	rkey := key.String()
	if err := d.v.Validate(rkey, value); err != nil {
		return err
	}

	d.putMu.Lock()
	defer d.putMu.Unlock()

	old, err := d.Datastore.Get(ctx, key)
	if errors.Is(err, ds.ErrNotFound) {
		return d.Datastore.Put(ctx, key, value)
	}
	if err != nil {
		return err
	}
	if bytes.Equal(old, value) {
		return nil
	}

	idx, err := d.v.Select(rkey, [][]byte{value, old})
	if err != nil {
		return err
	}
	if idx != 0 {
		d.log.Debug("kept stored record", zap.String("key", rkey))
		return &p2precord.ErrBetterRecord{Key: rkey, Value: old}
	}
	return d.Datastore.Put(ctx, key, value)
}

// PutRecord stores rec under its key.
func (d *Datastore) PutRecord(ctx context.Context, rec *record.Record) error {
	return d.Put(ctx, ds.NewKey(rec.Key), rec.Value)
}

// Get returns the stored value after validating it again.
func (d *Datastore) Get(ctx context.Context, key ds.Key) ([]byte, error) {
	value, err := d.Datastore.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := d.v.Validate(key.String(), value); err != nil {
		d.log.Warn("stored record is invalid", zap.String("key", key.String()), zap.Error(err))
		return nil, fmt.Errorf("stored value: %w", err)
	}
	return value, nil
}

var _ ds.Datastore = (*Datastore)(nil)
