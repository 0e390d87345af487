// Package validators provides record validators for namespaces beyond the
// built-in "pk" one. None is registered by default; mount them with
// Register or NamespacedValidator.AddValidator.
package validators

import (
	"strings"

	"github.com/pilinsin/record-verse/record"
)

// TypedValidator is a validator with a default namespace.
type TypedValidator interface {
	record.Validator
	Type() string
}

type registry interface {
	AddValidator(string, record.Validator) error
}

// Register adds each validator under its Type.
func Register(r registry, vs ...TypedValidator) error {
	for _, v := range vs {
		if err := r.AddValidator(v.Type(), v); err != nil {
			return err
		}
	}
	return nil
}

func raw(b []byte) ([]byte, error) {
	return b, nil
}

// firstSegment returns the path up to its first separator.
func firstSegment(key string) (string, error) {
	_, path, err := record.SplitKey(key)
	if err != nil {
		return "", err
	}
	seg, _, _ := strings.Cut(path, "/")
	return seg, nil
}

func reverse[T any](cmp func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return cmp(b, a) }
}

var (
	_ TypedValidator = Simple{}
	_ TypedValidator = Const{}
	_ TypedValidator = CID{}
	_ TypedValidator = Hash{}
	_ TypedValidator = (*Signature)(nil)
	_ TypedValidator = Updatable{}
)
