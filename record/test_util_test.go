package record

import (
	"crypto/rand"
	"strconv"
	"sync/atomic"
	"testing"

	p2pcrypto "github.com/libp2p/go-libp2p/core/crypto"
	peer "github.com/libp2p/go-libp2p/core/peer"
	"github.com/stretchr/testify/require"
)

func generatePubKey(t *testing.T) (p2pcrypto.PubKey, peer.ID, []byte) {
	t.Helper()
	_, pub, err := p2pcrypto.GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)
	id, err := peer.IDFromPublicKey(pub)
	require.NoError(t, err)
	m, err := p2pcrypto.MarshalPublicKey(pub)
	require.NoError(t, err)
	return pub, id, m
}

// numericValidator accepts decimal integers and selects the largest.
type numericValidator struct{}

func parseNumeric(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}

func (numericValidator) Validate(_ string, value []byte) error {
	if _, err := parseNumeric(value); err != nil {
		return ErrInvalidRecord
	}
	return nil
}

func (numericValidator) Select(_ string, values [][]byte) (int, error) {
	return SelectMax(values, parseNumeric, func(a, b int64) int {
		switch {
		case a > b:
			return 1
		case a < b:
			return -1
		}
		return 0
	}), nil
}

type countingValidator struct {
	validates atomic.Int64
	selects   atomic.Int64
	index     int
	err       error
}

func (v *countingValidator) Validate(string, []byte) error {
	v.validates.Add(1)
	return v.err
}

func (v *countingValidator) Select(string, [][]byte) (int, error) {
	v.selects.Add(1)
	return v.index, v.err
}
