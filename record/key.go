package record

import (
	"fmt"
	"strings"
)

const separator = "/"

// SplitKey splits a key of the form /<namespace>/<path> into its namespace
// and path. The path is returned verbatim and may contain separators, but it
// must hold at least one non-empty segment.
func SplitKey(key string) (string, string, error) {
	if !strings.HasPrefix(key, separator) {
		return "", "", fmt.Errorf("%w: %q does not start with %q", ErrInvalidKeyFormat, key, separator)
	}
	ns, path, ok := strings.Cut(key[1:], separator)
	if !ok {
		return "", "", fmt.Errorf("%w: %q has no path", ErrInvalidKeyFormat, key)
	}
	if ns == "" {
		return "", "", fmt.Errorf("%w: %q has an empty namespace", ErrInvalidKeyFormat, key)
	}
	if strings.Trim(path, separator) == "" {
		return "", "", fmt.Errorf("%w: %q has an empty path", ErrInvalidKeyFormat, key)
	}
	return ns, path, nil
}

// ValidNamespace reports whether ns can be used as a namespace token.
func ValidNamespace(ns string) error {
	if ns == "" {
		return fmt.Errorf("%w: empty namespace", ErrInvalidNamespace)
	}
	if strings.Contains(ns, separator) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidNamespace, ns, separator)
	}
	return nil
}
