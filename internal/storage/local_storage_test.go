package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageService(t *testing.T) {
	svc, err := NewLocalStorageService(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := NewProductImageKey(7)
	assert.True(t, strings.HasPrefix(key, "products/7/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	t.Run("Save and read", func(t *testing.T) {
		require.NoError(t, svc.SaveFile(ctx, key, strings.NewReader("png-bytes")))

		exists, size, err := svc.FileExists(ctx, key)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, int64(9), size)

		rc, err := svc.ReadFile(ctx, key)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteFile(ctx, key))
		exists, _, err := svc.FileExists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, svc.DeleteFile(ctx, key))
	})

	t.Run("Rejects escaping keys", func(t *testing.T) {
		assert.ErrorIs(t, svc.SaveFile(ctx, "../outside.png", strings.NewReader("x")), ErrInvalidKey)
		_, err := svc.ReadFile(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}
