package storage

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveUploadRejectsUnknownExtension(t *testing.T) {
	store, err := NewMediaStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.SaveUpload("avatars", &multipart.FileHeader{Filename: "payload.exe"})
	require.Error(t, err)
}

func TestExistsAndDelete(t *testing.T) {
	store, err := NewMediaStorage(t.TempDir())
	require.NoError(t, err)

	require.False(t, store.Exists("avatars/missing.png"))
	require.NoError(t, store.Delete("avatars/missing.png"))
}
