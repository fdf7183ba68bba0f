package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		_, err := Config{}.Options()
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("plain url gets default port", func(t *testing.T) {
		opts, err := Config{URL: "redis://cache.internal"}.Options()
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6379", opts.Addr)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("tls and password from url", func(t *testing.T) {
		opts, err := Config{URL: "rediss://default:pw@cache.internal:6380"}.Options()
		require.NoError(t, err)
		assert.Equal(t, "cache.internal:6380", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.NotNil(t, opts.TLSConfig)
	})

	t.Run("explicit password wins", func(t *testing.T) {
		opts, err := Config{URL: "redis://:pw@cache.internal:6379", Password: "other"}.Options()
		require.NoError(t, err)
		assert.Equal(t, "other", opts.Password)
	})

	t.Run("bad scheme", func(t *testing.T) {
		_, err := Config{URL: "http://cache.internal"}.Options()
		assert.Error(t, err)
	})
}
