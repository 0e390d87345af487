package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key  string
		ns   string
		path string
	}{
		{"/pk/ABC", "pk", "ABC"},
		{"/namespace/path/with/slashes", "namespace", "path/with/slashes"},
		{"/ipns//x", "ipns", "/x"},
		{"/Pk/abc/", "Pk", "abc/"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ns, path, err := SplitKey(tt.key)
			require.NoError(t, err)
			require.Equal(t, tt.ns, ns)
			require.Equal(t, tt.path, path)
		})
	}
}

func TestSplitKeyInvalid(t *testing.T) {
	keys := []string{
		"",
		"/",
		"noSlash",
		"pk/QmTest",
		"/pk",
		"/pk/",
		"/pk//",
		"//path",
		"///",
	}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			_, _, err := SplitKey(key)
			require.ErrorIs(t, err, ErrInvalidKeyFormat)
		})
	}
}

func TestValidNamespace(t *testing.T) {
	require.NoError(t, ValidNamespace("pk"))
	require.NoError(t, ValidNamespace("ipns"))
	require.ErrorIs(t, ValidNamespace(""), ErrInvalidNamespace)
	require.ErrorIs(t, ValidNamespace("a/b"), ErrInvalidNamespace)
	require.ErrorIs(t, ValidNamespace("/pk"), ErrInvalidNamespace)
}
