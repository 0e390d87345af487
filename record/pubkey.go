package record

import (
	"bytes"
	"fmt"

	p2pcrypto "github.com/libp2p/go-libp2p/core/crypto"
	peer "github.com/libp2p/go-libp2p/core/peer"
	mh "github.com/multiformats/go-multihash"
)

// PublicKeyNamespace is the namespace PublicKeyValidator is registered under.
const PublicKeyNamespace = "pk"

// PublicKeyValidator validates /pk/<peer-id> records: the value must be a
// serialized public key whose peer ID is the one in the key path.
type PublicKeyValidator struct{}

func (PublicKeyValidator) Validate(key string, value []byte) error {
	_, path, err := SplitKey(key)
	if err != nil {
		return err
	}

	pub, err := p2pcrypto.UnmarshalPublicKey(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	derived, err := peer.IDFromPublicKey(pub)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	claimed, err := DecodeIdentity(path)
	if err != nil {
		return err
	}
	if !bytes.Equal([]byte(derived), []byte(claimed)) {
		return fmt.Errorf("%w: public key does not match storage key", ErrInvalidRecord)
	}
	return nil
}

// Select always picks the first value: a peer ID has exactly one public key.
func (PublicKeyValidator) Select(_ string, values [][]byte) (int, error) {
	if len(values) == 0 {
		return 0, ErrEmptyCandidateSet
	}
	return 0, nil
}

// DecodeIdentity decodes a peer ID string (base58 or CID form) and checks
// that it is a well-formed multihash.
func DecodeIdentity(s string) (peer.ID, error) {
	id, err := peer.Decode(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMultihash, err)
	}
	if _, err := mh.Decode([]byte(id)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMultihash, err)
	}
	return id, nil
}

// PublicKeyRecord builds the /pk record of pub.
func PublicKeyRecord(pub p2pcrypto.PubKey) (*Record, error) {
	id, err := peer.IDFromPublicKey(pub)
	if err != nil {
		return nil, err
	}
	m, err := p2pcrypto.MarshalPublicKey(pub)
	if err != nil {
		return nil, err
	}
	return MakePutRecord(separator+PublicKeyNamespace+separator+id.String(), m), nil
}

var _ Validator = PublicKeyValidator{}
