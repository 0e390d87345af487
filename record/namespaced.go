package record

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Opts configures a NamespacedValidator.
type Opts struct {
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Validators are registered after the built-in ones and may replace them.
	Validators map[string]Validator
}

func getNamespacedOpts(opts ...*Opts) (*zap.Logger, map[string]Validator) {
	if len(opts) == 0 || opts[0] == nil {
		return zap.NewNop(), nil
	}
	log := opts[0].Logger
	if log == nil {
		log = zap.NewNop()
	}
	return log, opts[0].Validators
}

// NamespacedValidator routes Validate and Select to the validator registered
// for the namespace of the key. It is safe for concurrent use, and
// registrations may happen while validation traffic is in flight.
type NamespacedValidator struct {
	log *zap.Logger

	mu         sync.RWMutex
	validators map[string]Validator
}

// NewNamespacedValidator returns a validator with PublicKeyValidator
// registered under "pk". Options that fail to register are skipped and logged.
func NewNamespacedValidator(opts ...*Opts) *NamespacedValidator {
	log, extra := getNamespacedOpts(opts...)
	nv := &NamespacedValidator{
		log: log,
		validators: map[string]Validator{
			PublicKeyNamespace: PublicKeyValidator{},
		},
	}

	nss := make([]string, 0, len(extra))
	for ns := range extra {
		nss = append(nss, ns)
	}
	sort.Strings(nss)
	for _, ns := range nss {
		if err := nv.AddValidator(ns, extra[ns]); err != nil {
			log.Warn("skipping validator", zap.String("namespace", ns), zap.Error(err))
		}
	}
	return nv
}

// AddValidator registers v for ns, replacing any validator already there.
func (nv *NamespacedValidator) AddValidator(ns string, v Validator) error {
	if err := ValidNamespace(ns); err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%w: namespace %q", ErrNilValidator, ns)
	}

	nv.mu.Lock()
	_, replaced := nv.validators[ns]
	nv.validators[ns] = v
	nv.mu.Unlock()

	if replaced {
		nv.log.Info("replaced validator", zap.String("namespace", ns))
	} else {
		nv.log.Debug("added validator", zap.String("namespace", ns))
	}
	return nil
}

// Namespaces returns the registered namespaces in sorted order.
func (nv *NamespacedValidator) Namespaces() []string {
	nv.mu.RLock()
	nss := make([]string, 0, len(nv.validators))
	for ns := range nv.validators {
		nss = append(nss, ns)
	}
	nv.mu.RUnlock()

	sort.Strings(nss)
	return nss
}

// ValidatorByKey returns the validator responsible for key, or nil when the
// key is malformed or its namespace is not registered.
func (nv *NamespacedValidator) ValidatorByKey(key string) Validator {
	ns, _, err := SplitKey(key)
	if err != nil {
		return nil
	}
	v, _ := nv.lookup(ns)
	return v
}

func (nv *NamespacedValidator) lookup(ns string) (Validator, error) {
	nv.mu.RLock()
	v, ok := nv.validators[ns]
	nv.mu.RUnlock()
	if !ok {
		return nil, &unknownNamespaceError{ns}
	}
	return v, nil
}

func (nv *NamespacedValidator) resolve(key string) (string, Validator, error) {
	ns, _, err := SplitKey(key)
	if err != nil {
		return "", nil, err
	}
	v, err := nv.lookup(ns)
	return ns, v, err
}

// Validate checks value with the validator of the key's namespace.
func (nv *NamespacedValidator) Validate(key string, value []byte) error {
	ns, v, err := nv.resolve(key)
	if err == nil {
		err = v.Validate(key, value)
	}
	if err != nil {
		nv.log.Debug("rejected record",
			zap.String("key", key),
			zap.String("namespace", ns),
			zap.Error(err),
		)
		return &Error{Op: "validate", Key: key, Namespace: ns, Err: err}
	}
	return nil
}

// Select picks the best of values with the validator of the key's namespace.
// A single candidate is selected without looking at the key.
func (nv *NamespacedValidator) Select(key string, values [][]byte) (int, error) {
	switch len(values) {
	case 0:
		return 0, &Error{Op: "select", Key: key, Err: ErrEmptyCandidateSet}
	case 1:
		return 0, nil
	}

	ns, v, err := nv.resolve(key)
	if err != nil {
		return 0, &Error{Op: "select", Key: key, Namespace: ns, Err: err}
	}
	idx, err := v.Select(key, values)
	if err != nil {
		return 0, &Error{Op: "select", Key: key, Namespace: ns, Err: err}
	}
	if idx < 0 || idx >= len(values) {
		err := fmt.Errorf("%w: %d of %d", ErrSelectionOutOfRange, idx, len(values))
		return 0, &Error{Op: "select", Key: key, Namespace: ns, Err: err}
	}
	return idx, nil
}

var _ Validator = (*NamespacedValidator)(nil)
