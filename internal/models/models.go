package models

import (
	"time"
)

// User representa um usuário no sistema
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Nunca expor em JSON
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// File representa os metadados de um arquivo armazenado no disco local.
// O conteúdo binário vive em FilePath; só os metadados vão para o banco.
type File struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	FilePath  string    `json:"-"` // Caminho no servidor, não expor em JSON
	FileSize  int64     `json:"file_size"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
