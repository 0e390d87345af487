package record

import (
	"errors"
	"fmt"

	p2precord "github.com/libp2p/go-libp2p-record"
)

var (
	ErrInvalidKeyFormat  = errors.New("invalid record key format")
	ErrUnknownNamespace  = errors.New("no validator for namespace")
	ErrInvalidRecord     = errors.New("invalid record")
	ErrInvalidPublicKey  = errors.New("invalid public key")
	ErrInvalidMultihash  = errors.New("invalid multihash")
	ErrEmptyCandidateSet = errors.New("can't select from no values")

	ErrInvalidNamespace    = errors.New("invalid namespace")
	ErrNilValidator        = errors.New("nil validator")
	ErrSelectionOutOfRange = errors.New("selected index out of range")

	// ErrInvalidRecordType is the go-libp2p-record error DHT implementations
	// check for. Unknown namespace errors match it.
	ErrInvalidRecordType = p2precord.ErrInvalidRecordType
)

type unknownNamespaceError struct {
	ns string
}

func (e *unknownNamespaceError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownNamespace, e.ns)
}

func (e *unknownNamespaceError) Is(target error) bool {
	return target == ErrUnknownNamespace || target == ErrInvalidRecordType
}

// Error is returned by NamespacedValidator. It names the operation, key and
// namespace and wraps the underlying error unchanged.
type Error struct {
	Op        string
	Key       string
	Namespace string
	Err       error
}

func (e *Error) Error() string {
	if e.Namespace == "" {
		return fmt.Sprintf("record %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("record %s %q (%s): %v", e.Op, e.Key, e.Namespace, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
