package repository

import (
	"context"
	"errors"

	"clouddrive-backend/internal/models"
)

// Erros sentinela do repositório. Os handlers mapeiam esses erros
// para os códigos HTTP corretos sem inspecionar strings.
var (
	// ErrNotFound indica que o registro não existe (ou não pertence ao dono consultado)
	ErrNotFound = errors.New("registro não encontrado")
	// ErrEmailTaken indica violação da constraint de unicidade de e-mail
	ErrEmailTaken = errors.New("e-mail já registrado")
)

// UserStore define a interface para operações de usuário no DB
type UserStore interface {
	// CreateUser persiste o usuário e preenche ID e CreatedAt gerados pelo store.
	// Retorna ErrEmailTaken se o e-mail já existir.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// FileStore define a interface para operações de metadados de arquivo no DB.
// Todas as consultas são limitadas ao dono: um arquivo só é visível,
// listável e removível pelo usuário que o enviou.
type FileStore interface {
	// CreateFile persiste os metadados e preenche ID e CreatedAt gerados pelo store
	CreateFile(ctx context.Context, file *models.File) error
	GetFileByID(ctx context.Context, id, ownerID int64) (*models.File, error)
	ListFilesByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*models.File, error)
	// DeleteFile remove o registro; retorna ErrNotFound se não existir para esse dono
	DeleteFile(ctx context.Context, id, ownerID int64) error
}

// Store é uma interface agregada para todas as operações de store
// Facilita a injeção de dependência
type Store interface {
	UserStore
	FileStore
}
