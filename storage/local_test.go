package storage

import (
	"bytes"
	"cblls_server/lib"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fb, err := OpenFile(t.TempDir(), 0)
	require.NoError(t, err)

	_, found, err := fb.Get(ctx, KeyProducts)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, fb.Set(ctx, KeyProducts, []byte(`[{"id":1}]`)))

	data, found, err := fb.Get(ctx, KeyProducts)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte(`[{"id":1}]`), data)
}

func TestFileBackend_QuotaRejectsWriteAndKeepsOldDocument(t *testing.T) {
	ctx := context.Background()
	fb, err := OpenFile(t.TempDir(), 64)
	require.NoError(t, err)

	small := []byte(`{"ok":true}`)
	require.NoError(t, fb.Set(ctx, KeyConfig, small))

	big := bytes.Repeat([]byte("x"), 128)
	err = fb.Set(ctx, KeyConfig, big)
	require.ErrorIs(t, err, lib.ErrStorageFull)

	// the previous document must survive the rejected write
	data, found, err := fb.Get(ctx, KeyConfig)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, small, data)
}

func TestFileBackend_QuotaCountsSiblingDocuments(t *testing.T) {
	ctx := context.Background()
	fb, err := OpenFile(t.TempDir(), 100)
	require.NoError(t, err)

	require.NoError(t, fb.Set(ctx, KeyProducts, bytes.Repeat([]byte("a"), 80)))

	// replacing an existing document does not double-count it
	require.NoError(t, fb.Set(ctx, KeyProducts, bytes.Repeat([]byte("b"), 90)))

	// but a second document must fit in what remains
	err = fb.Set(ctx, KeyConfig, bytes.Repeat([]byte("c"), 50))
	require.ErrorIs(t, err, lib.ErrStorageFull)
}

func TestFileBackend_DeleteAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	fb, err := OpenFile(t.TempDir(), 0)
	require.NoError(t, err)

	require.NoError(t, fb.Delete(ctx, KeySession))
}
