package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"clouddrive-backend/internal/models"
	"clouddrive-backend/internal/repository"
)

// Limites de paginação da listagem de arquivos
const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// FileService lida com a lógica de negócios de arquivos: o conteúdo vai
// para o DiskStorage e os metadados para o FileStore
type FileService struct {
	store   repository.FileStore
	storage *DiskStorage
}

// NewFileService cria um novo serviço de arquivos
func NewFileService(store repository.FileStore, storage *DiskStorage) *FileService {
	return &FileService{
		store:   store,
		storage: storage,
	}
}

// Upload grava o stream no disco e, só depois da gravação completa,
// registra os metadados com o tamanho medido. Se a gravação falhar,
// nenhum registro é criado; se o insert falhar, o objeto recém-gravado
// é removido para não ficar órfão no disco.
func (s *FileService) Upload(ctx context.Context, owner *models.User, filename string, r io.Reader) (*models.File, error) {
	if filename == "" {
		return nil, fmt.Errorf("nome do arquivo não pode ser vazio")
	}

	path := s.storage.ObjectPath(owner.ID, filename)

	size, err := s.storage.Save(path, r)
	if err != nil {
		log.Printf("Erro ao gravar upload em disco: %v", err)
		return nil, fmt.Errorf("erro interno ao gravar arquivo")
	}

	file := &models.File{
		Filename: filename,
		FilePath: path,
		FileSize: size,
		OwnerID:  owner.ID,
	}

	if err := s.store.CreateFile(ctx, file); err != nil {
		log.Printf("Erro ao salvar metadados do arquivo: %v", err)
		if rmErr := s.storage.Remove(path); rmErr != nil {
			log.Printf("Erro ao remover objeto após falha de insert: %v", rmErr)
		}
		return nil, fmt.Errorf("erro interno ao salvar arquivo")
	}

	return file, nil
}

// List retorna os arquivos do dono, paginados e ordenados por ID
func (s *FileService) List(ctx context.Context, owner *models.User, skip, limit int) ([]*models.File, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	files, err := s.store.ListFilesByOwner(ctx, owner.ID, skip, limit)
	if err != nil {
		log.Printf("Erro ao listar arquivos no store: %v", err)
		return nil, fmt.Errorf("erro interno ao listar arquivos")
	}
	return files, nil
}

// Download abre o conteúdo de um arquivo do dono. Retorna
// repository.ErrNotFound tanto quando o registro não existe para esse dono
// quanto quando o objeto sumiu do disco apesar dos metadados existirem
// (detectado na hora da requisição).
func (s *FileService) Download(ctx context.Context, owner *models.User, fileID int64) (*models.File, *os.File, error) {
	file, err := s.store.GetFileByID(ctx, fileID, owner.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, repository.ErrNotFound
		}
		log.Printf("Erro ao buscar arquivo no store: %v", err)
		return nil, nil, fmt.Errorf("erro interno ao buscar arquivo")
	}

	f, err := s.storage.Open(file.FilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Metadados existem mas objeto sumiu do disco: %s", file.FilePath)
			return nil, nil, repository.ErrNotFound
		}
		log.Printf("Erro ao abrir arquivo em disco: %v", err)
		return nil, nil, fmt.Errorf("erro interno ao abrir arquivo")
	}

	return file, f, nil
}

// Delete remove o objeto do disco (tolerando objeto já ausente) e depois
// o registro de metadados. Falha na remoção do registro é reportada como
// erro interno: o objeto já saiu do disco, mas o registro ainda existe.
func (s *FileService) Delete(ctx context.Context, owner *models.User, fileID int64) error {
	file, err := s.store.GetFileByID(ctx, fileID, owner.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		log.Printf("Erro ao buscar arquivo no store: %v", err)
		return fmt.Errorf("erro interno ao buscar arquivo")
	}

	if err := s.storage.Remove(file.FilePath); err != nil {
		log.Printf("Erro ao remover objeto do disco: %v", err)
		return fmt.Errorf("erro interno ao remover arquivo do disco")
	}

	if err := s.store.DeleteFile(ctx, fileID, owner.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Outro request removeu o registro entre o GET e o DELETE
			return repository.ErrNotFound
		}
		log.Printf("Erro ao remover registro do arquivo: %v", err)
		return fmt.Errorf("erro interno ao remover registro do arquivo")
	}

	return nil
}
