package protocols_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protocolkb/internal/adapters/protocols"
	"protocolkb/internal/blob"
)

func TestBlobObjectStoreOverFilesystem(t *testing.T) {
	ctx := context.Background()
	store, err := blob.Open(ctx, blob.Options{Driver: blob.DriverFilesystem, FSRoot: filepath.Join(t.TempDir(), "blobs")})
	require.NoError(t, err)
	objects := protocols.NewBlobObjectStore(store, 0)

	artifact, err := objects.Put(ctx, "exports/e1/a.csv", []byte("id\n"), "text/csv", map[string]any{"protocols": 1})
	require.NoError(t, err)
	assert.Equal(t, "exports/e1/a.csv", artifact.Key)
	assert.Equal(t, int64(3), artifact.SizeBytes)
	assert.Equal(t, "text/csv", artifact.ContentType)
	assert.Equal(t, "1", artifact.Metadata["protocols"])
	assert.True(t, strings.HasPrefix(artifact.URL, "http://local.blob/"), artifact.URL)

	_, err = objects.Put(ctx, "exports/e1/a.csv", []byte("x"), "", nil)
	assert.True(t, errors.Is(err, blob.ErrExists), "got %v", err)

	got, payload, err := objects.Get(ctx, "exports/e1/a.csv")
	require.NoError(t, err)
	assert.Equal(t, "id\n", string(payload))
	assert.Equal(t, "text/csv", got.ContentType)

	_, err = objects.Put(ctx, "exports/e2/b.json", []byte("{}"), "application/json", nil)
	require.NoError(t, err)
	list, err := objects.List(ctx, "exports/e1/")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "exports/e1/a.csv", list[0].ID)

	existed, err := objects.Delete(ctx, "exports/e1/a.csv")
	require.NoError(t, err)
	assert.True(t, existed)
	_, _, err = objects.Get(ctx, "exports/e1/a.csv")
	assert.True(t, errors.Is(err, blob.ErrNotFound), "got %v", err)
}

func TestBlobObjectStoreWithoutPresign(t *testing.T) {
	ctx := context.Background()
	store, err := blob.Open(ctx, blob.Options{Driver: blob.DriverMemory})
	require.NoError(t, err)
	artifact, err := protocols.NewBlobObjectStore(store, 0).Put(ctx, "k", []byte("v"), "", nil)
	require.NoError(t, err)
	assert.Empty(t, artifact.URL)
	assert.Nil(t, artifact.Metadata)
}
