package validators

import (
	"bytes"
	"fmt"

	p2pcrypto "github.com/libp2p/go-libp2p/core/crypto"
	peer "github.com/libp2p/go-libp2p/core/peer"

	pv "github.com/pilinsin/record-verse"
	"github.com/pilinsin/record-verse/record"
)

type signedData struct {
	Value []byte
	Sign  []byte
}

// SignValue signs val with priv and returns the record value.
func SignValue(priv p2pcrypto.PrivKey, val []byte) ([]byte, error) {
	sign, err := priv.Sign(val)
	if err != nil {
		return nil, err
	}
	return pv.Marshal(&signedData{val, sign})
}

// UnmarshalSignedValue returns the payload of a signed record value without
// verifying it.
func UnmarshalSignedValue(m []byte) ([]byte, error) {
	sd := &signedData{}
	if err := pv.Unmarshal(m, sd); err != nil {
		return nil, err
	}
	return sd.Value, nil
}

// SignatureKey returns the key path prefix owned by pub.
func SignatureKey(pub p2pcrypto.PubKey) (string, error) {
	id, err := peer.IDFromPublicKey(pub)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Signature validates records under /<ns>/<peer-id>/...: the value must be
// signed by the key inlined in the peer ID. The signed payload is then
// checked by the inner validator.
type Signature struct {
	inner record.Validator
}

// NewSignature returns a Signature validator. inner defaults to Simple.
func NewSignature(inner ...record.Validator) *Signature {
	if len(inner) == 0 || inner[0] == nil {
		return &Signature{Simple{}}
	}
	return &Signature{inner[0]}
}

func (v *Signature) verify(key string, val []byte) ([]byte, error) {
	seg, err := firstSegment(key)
	if err != nil {
		return nil, err
	}
	id, err := record.DecodeIdentity(seg)
	if err != nil {
		return nil, err
	}
	vk, err := id.ExtractPublicKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrInvalidPublicKey, err)
	}

	sd := &signedData{}
	if err := pv.Unmarshal(val, sd); err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrInvalidRecord, err)
	}
	ok, err := vk.Verify(sd.Value, sd.Sign)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", record.ErrInvalidRecord, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: bad signature", record.ErrInvalidRecord)
	}
	return sd.Value, nil
}

func (v *Signature) Validate(key string, val []byte) error {
	payload, err := v.verify(key, val)
	if err != nil {
		return err
	}
	return v.inner.Validate(key, payload)
}

// Select ranks values with a valid signature first and lets the inner
// validator choose among their payloads.
func (v *Signature) Select(key string, vals [][]byte) (int, error) {
	if len(vals) == 0 {
		return 0, record.ErrEmptyCandidateSet
	}

	idxs := make([]int, 0, len(vals))
	payloads := make([][]byte, 0, len(vals))
	for i, val := range vals {
		payload, err := v.verify(key, val)
		if err != nil {
			continue
		}
		idxs = append(idxs, i)
		payloads = append(payloads, payload)
	}
	switch len(idxs) {
	case 0:
		return record.SelectMax(vals, raw, bytes.Compare), nil
	case 1:
		return idxs[0], nil
	}

	idx, err := v.inner.Select(key, payloads)
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(idxs) {
		return 0, fmt.Errorf("%w: inner validator picked %d of %d", record.ErrSelectionOutOfRange, idx, len(idxs))
	}

	// envelopes of the same payload differ in signature or encoding
	best := idxs[idx]
	for j, i := range idxs {
		if bytes.Equal(payloads[j], payloads[idx]) && bytes.Compare(vals[i], vals[best]) > 0 {
			best = i
		}
	}
	return best, nil
}

func (*Signature) Type() string {
	return "signature"
}
