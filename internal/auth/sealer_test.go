package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewSealer("0123456789abcdef-test-secret")
	require.NoError(t, err)

	sealed, err := s.Seal("lv_api_key_123", "tpl-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, "v1:"))
	assert.NotContains(t, sealed, "lv_api_key_123")

	opened, err := s.Open(sealed, "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "lv_api_key_123", opened)
}

func TestSealer_NonceIsRandom(t *testing.T) {
	t.Parallel()

	s, err := NewSealer("0123456789abcdef-test-secret")
	require.NoError(t, err)

	a, err := s.Seal("same", "tpl-1")
	require.NoError(t, err)
	b, err := s.Seal("same", "tpl-1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSealer_WrongAdditionalData(t *testing.T) {
	t.Parallel()

	s, err := NewSealer("0123456789abcdef-test-secret")
	require.NoError(t, err)

	sealed, err := s.Seal("secret", "tpl-1")
	require.NoError(t, err)

	_, err = s.Open(sealed, "tpl-2")
	assert.Error(t, err)
}

func TestSealer_WrongKey(t *testing.T) {
	t.Parallel()

	a, err := NewSealer("0123456789abcdef-secret-a")
	require.NoError(t, err)
	b, err := NewSealer("0123456789abcdef-secret-b")
	require.NoError(t, err)

	sealed, err := a.Seal("secret", "tpl-1")
	require.NoError(t, err)

	_, err = b.Open(sealed, "tpl-1")
	assert.Error(t, err)
}

func TestSealer_Malformed(t *testing.T) {
	t.Parallel()

	s, err := NewSealer("0123456789abcdef-test-secret")
	require.NoError(t, err)

	for _, value := range []string{"", "plaintext", "v1:!!!", "v1:AAAA"} {
		_, err := s.Open(value, "tpl-1")
		assert.True(t, errors.Is(err, ErrMalformedSealed), "value %q: got %v", value, err)
	}
}

func TestNewSealer_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewSealer("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
