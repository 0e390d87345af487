// Package recordverse validates and selects records exchanged by peers of a
// key-value overlay. The record package holds the namespace-routed engine;
// validators, gossip and dstore build on it.
package recordverse

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var errTrailingData = errors.New("trailing data after JSON value")

// Marshal encodes the exported fields of obj as JSON. Validators use it for
// their value envelopes.
func Marshal(obj interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	err := enc.Encode(obj)
	return buf.Bytes(), err
}

// Unmarshal decodes b into obj, rejecting unknown fields and trailing data.
func Unmarshal(b []byte, obj interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errTrailingData
	}
	return nil
}
