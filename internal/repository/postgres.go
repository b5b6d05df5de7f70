package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"clouddrive-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore é a implementação da interface Store para o PostgreSQL
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore cria uma nova instância do PostgresStore e pool de conexões
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("não foi possível criar pool de conexão: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("não foi possível pingar o banco de dados: %w", err)
	}

	log.Println("Pool de conexão com PostgreSQL estabelecido.")
	return &PostgresStore{db: pool}, nil
}

// Close fecha o pool de conexões
func (s *PostgresStore) Close() {
	s.db.Close()
}

// RunMigrations executa o script SQL de migração
func (s *PostgresStore) RunMigrations(ctx context.Context, migrationSQL string) error {
	_, err := s.db.Exec(ctx, migrationSQL)
	if err != nil {
		return fmt.Errorf("falha ao executar migração: %w", err)
	}
	return nil
}

// --- UserStore ---

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	sql := `
        INSERT INTO users (email, hashed_password, is_active)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	err := s.db.QueryRow(ctx, sql,
		user.Email,
		user.HashedPassword,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		// Verifica se é um erro de violação de constraint (e-mail duplicado)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // 23505 = unique_violation
			return ErrEmailTaken
		}
		return fmt.Errorf("falha ao criar usuário: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql := `
        SELECT id, email, hashed_password, is_active, created_at
        FROM users
        WHERE email = $1`

	user := &models.User{}
	err := s.db.QueryRow(ctx, sql, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.IsActive,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário por e-mail: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql := `
        SELECT id, email, hashed_password, is_active, created_at
        FROM users
        WHERE id = $1`

	user := &models.User{}
	err := s.db.QueryRow(ctx, sql, id).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.IsActive,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário por ID: %w", err)
	}
	return user, nil
}

// --- FileStore ---

func (s *PostgresStore) CreateFile(ctx context.Context, file *models.File) error {
	sql := `
        INSERT INTO files (filename, file_path, file_size, owner_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	err := s.db.QueryRow(ctx, sql,
		file.Filename,
		file.FilePath,
		file.FileSize,
		file.OwnerID,
	).Scan(&file.ID, &file.CreatedAt)

	if err != nil {
		return fmt.Errorf("falha ao criar registro de arquivo: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetFileByID(ctx context.Context, id, ownerID int64) (*models.File, error) {
	sql := `
        SELECT id, filename, file_path, file_size, owner_id, created_at
        FROM files
        WHERE id = $1 AND owner_id = $2`

	file := &models.File{}
	err := s.db.QueryRow(ctx, sql, id, ownerID).Scan(
		&file.ID,
		&file.Filename,
		&file.FilePath,
		&file.FileSize,
		&file.OwnerID,
		&file.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar arquivo por ID: %w", err)
	}
	return file, nil
}

func (s *PostgresStore) ListFilesByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]*models.File, error) {
	sql := `
        SELECT id, filename, file_path, file_size, owner_id, created_at
        FROM files
        WHERE owner_id = $1
        ORDER BY id
        OFFSET $2 LIMIT $3`

	rows, err := s.db.Query(ctx, sql, ownerID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar arquivos: %w", err)
	}
	defer rows.Close()

	// Importante: inicializa como slice vazio, não nil, para consistência de JSON
	files := []*models.File{}

	for rows.Next() {
		file := &models.File{}
		err := rows.Scan(
			&file.ID,
			&file.Filename,
			&file.FilePath,
			&file.FileSize,
			&file.OwnerID,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("falha ao escanear linha de arquivo: %w", err)
		}
		files = append(files, file)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os arquivos: %w", err)
	}

	return files, nil
}

func (s *PostgresStore) DeleteFile(ctx context.Context, id, ownerID int64) error {
	sql := `DELETE FROM files WHERE id = $1 AND owner_id = $2`

	tag, err := s.db.Exec(ctx, sql, id, ownerID)
	if err != nil {
		return fmt.Errorf("falha ao remover registro de arquivo: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
