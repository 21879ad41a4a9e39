package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "alfredoptarigan/smartmatch/internal/config"
)

func TestLocalArtifactStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalArtifactStore(dir)

	require.NoError(t, store.Save(ctx, "abc/match_result.csv", []byte("a,b\n"), "text/csv"))
	assert.FileExists(t, filepath.Join(dir, "abc", "match_result.csv"))

	data, err := store.Load(ctx, "abc/match_result.csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))

	require.NoError(t, store.Delete(ctx, "abc/match_result.csv"))
	_, err = store.Load(ctx, "abc/match_result.csv")
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	assert.NoError(t, store.Delete(ctx, "abc/match_result.csv"), "deleting twice is not an error")
}

func TestLocalArtifactStore_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	store := NewLocalArtifactStore(t.TempDir())

	for _, key := range []string{"../outside.csv", "/etc/passwd", ".", "a/../../b"} {
		assert.Error(t, store.Save(ctx, key, []byte("x"), "text/plain"), key)
		_, err := store.Load(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestNewArtifactStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	store, err := NewArtifactStore(context.Background(), appconfig.StorageConfig{Driver: "local", ReportPath: dir})
	require.NoError(t, err)
	assert.NotNil(t, store)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = NewArtifactStore(context.Background(), appconfig.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)

	_, err = NewArtifactStore(context.Background(), appconfig.StorageConfig{Driver: "s3"})
	assert.Error(t, err, "s3 without a bucket")
}
