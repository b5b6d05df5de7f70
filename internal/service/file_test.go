package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clouddrive-backend/internal/models"
	"clouddrive-backend/internal/repository"

	"github.com/stretchr/testify/require"
)

func newFileService(t *testing.T) (*FileService, string) {
	t.Helper()
	dir := t.TempDir()
	storage, err := NewDiskStorage(dir)
	require.NoError(t, err)
	return NewFileService(repository.NewInMemoryStore(), storage), dir
}

func testOwner(id int64) *models.User {
	return &models.User{ID: id, Email: "a@x.com", IsActive: true}
}

func TestFileService_Upload_RecordsMeasuredSize(t *testing.T) {
	t.Parallel()

	svc, dir := newFileService(t)
	ctx := context.Background()
	owner := testOwner(1)

	file, err := svc.Upload(ctx, owner, "t.txt", strings.NewReader("0123456789"))
	require.NoError(t, err)
	require.NotZero(t, file.ID)
	require.Equal(t, int64(10), file.FileSize)
	require.Equal(t, owner.ID, file.OwnerID)

	// Objeto gravado no caminho determinístico {ownerID}_{filename}
	require.Equal(t, filepath.Join(dir, "1_t.txt"), file.FilePath)
	data, err := os.ReadFile(file.FilePath)
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(data))
}

func TestFileService_Upload_StripsClientPath(t *testing.T) {
	t.Parallel()

	svc, dir := newFileService(t)
	ctx := context.Background()

	file, err := svc.Upload(ctx, testOwner(1), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	// Componentes de diretório do cliente são descartados
	require.Equal(t, filepath.Join(dir, "1_passwd"), file.FilePath)
}

func TestFileService_DownloadRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := newFileService(t)
	ctx := context.Background()
	owner := testOwner(1)

	uploaded, err := svc.Upload(ctx, owner, "t.txt", strings.NewReader("0123456789"))
	require.NoError(t, err)

	file, content, err := svc.Download(ctx, owner, uploaded.ID)
	require.NoError(t, err)
	defer content.Close()

	require.Equal(t, "t.txt", file.Filename)
	data, err := io.ReadAll(content)
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(data))
}

func TestFileService_Download_CrossOwner(t *testing.T) {
	t.Parallel()

	svc, _ := newFileService(t)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, testOwner(1), "t.txt", strings.NewReader("x"))
	require.NoError(t, err)

	_, _, err = svc.Download(ctx, testOwner(2), uploaded.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFileService_Download_MissingOnDisk(t *testing.T) {
	t.Parallel()

	svc, _ := newFileService(t)
	ctx := context.Background()
	owner := testOwner(1)

	uploaded, err := svc.Upload(ctx, owner, "t.txt", strings.NewReader("x"))
	require.NoError(t, err)

	// Objeto some do disco com os metadados ainda no store
	require.NoError(t, os.Remove(uploaded.FilePath))

	_, _, err = svc.Download(ctx, owner, uploaded.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFileService_Delete(t *testing.T) {
	t.Parallel()

	svc, _ := newFileService(t)
	ctx := context.Background()
	owner := testOwner(1)

	uploaded, err := svc.Upload(ctx, owner, "t.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, uploaded.ID))

	// Disco e metadados removidos
	_, statErr := os.Stat(uploaded.FilePath)
	require.True(t, os.IsNotExist(statErr))

	files, err := svc.List(ctx, owner, 0, 0)
	require.NoError(t, err)
	require.Empty(t, files)

	// Remoções subsequentes viram Not-Found
	require.ErrorIs(t, svc.Delete(ctx, owner, uploaded.ID), repository.ErrNotFound)
}

func TestFileService_Delete_ToleratesObjectAlreadyGone(t *testing.T) {
	t.Parallel()

	svc, _ := newFileService(t)
	ctx := context.Background()
	owner := testOwner(1)

	uploaded, err := svc.Upload(ctx, owner, "t.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, os.Remove(uploaded.FilePath))

	// Objeto já ausente no disco não impede a remoção dos metadados
	require.NoError(t, svc.Delete(ctx, owner, uploaded.ID))
}

func TestFileService_List_Defaults(t *testing.T) {
	t.Parallel()

	svc, _ := newFileService(t)
	ctx := context.Background()
	owner := testOwner(1)

	for _, name := range []string{"a.txt", "b.txt"} {
		_, err := svc.Upload(ctx, owner, name, strings.NewReader("x"))
		require.NoError(t, err)
	}

	// skip/limit inválidos caem nos padrões
	files, err := svc.List(ctx, owner, -5, 0)
	require.NoError(t, err)
	require.Len(t, files, 2)
}
