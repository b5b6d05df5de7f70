package repository

import (
	"context"
	"sync"
	"time"

	"clouddrive-backend/internal/models"
)

// InMemoryStore é uma implementação em-memória da interface Store.
// Usada nos testes; os IDs numéricos são gerados por contadores locais.
type InMemoryStore struct {
	mu           sync.RWMutex
	usersByID    map[int64]*models.User
	usersByEmail map[string]*models.User
	filesByID    map[int64]*models.File
	nextUserID   int64
	nextFileID   int64
}

// NewInMemoryStore cria uma nova instância do store em memória
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		usersByID:    make(map[int64]*models.User),
		usersByEmail: make(map[string]*models.User),
		filesByID:    make(map[int64]*models.File),
	}
}

// --- UserStore ---

func (s *InMemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mesma garantia da constraint UNIQUE do Postgres
	if _, exists := s.usersByEmail[user.Email]; exists {
		return ErrEmailTaken
	}

	s.nextUserID++
	user.ID = s.nextUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	s.usersByID[user.ID] = user
	s.usersByEmail[user.Email] = user
	return nil
}

func (s *InMemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.usersByEmail[email]
	if !exists {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *InMemoryStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.usersByID[id]
	if !exists {
		return nil, ErrNotFound
	}
	return user, nil
}

// --- FileStore ---

func (s *InMemoryStore) CreateFile(ctx context.Context, file *models.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextFileID++
	file.ID = s.nextFileID
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}

	s.filesByID[file.ID] = file
	return nil
}

func (s *InMemoryStore) GetFileByID(ctx context.Context, id, ownerID int64) (*models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, exists := s.filesByID[id]
	if !exists || file.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return file, nil
}

func (s *InMemoryStore) ListFilesByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Retorna lista vazia em vez de nil, para consistência
	files := []*models.File{}

	// IDs são sequenciais: iterar em ordem de ID mantém a ordenação estável
	for id := int64(1); id <= s.nextFileID; id++ {
		file, exists := s.filesByID[id]
		if !exists || file.OwnerID != ownerID {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		if len(files) >= limit {
			break
		}
		files = append(files, file)
	}
	return files, nil
}

func (s *InMemoryStore) DeleteFile(ctx context.Context, id, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, exists := s.filesByID[id]
	if !exists || file.OwnerID != ownerID {
		return ErrNotFound
	}

	delete(s.filesByID, id)
	return nil
}
