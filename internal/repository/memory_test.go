package repository

import (
	"context"
	"errors"
	"testing"

	"clouddrive-backend/internal/models"
)

func newUser(email string) *models.User {
	return &models.User{
		Email:          email,
		HashedPassword: "hash",
		IsActive:       true,
	}
}

func TestInMemoryStore_CreateUser_AssignsID(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	ctx := context.Background()

	u := newUser("a@x.com")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("esperava ID gerado, obteve 0")
	}
	if u.CreatedAt.IsZero() {
		t.Fatalf("esperava CreatedAt preenchido")
	}

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("ID incorreto: got %d want %d", got.ID, u.ID)
	}
}

func TestInMemoryStore_CreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	ctx := context.Background()

	if err := s.CreateUser(ctx, newUser("a@x.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	err := s.CreateUser(ctx, newUser("a@x.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("esperava ErrEmailTaken, obteve %v", err)
	}
}

func TestInMemoryStore_GetUser_NotFound(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	ctx := context.Background()

	if _, err := s.GetUserByEmail(ctx, "ghost@x.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("esperava ErrNotFound, obteve %v", err)
	}
	if _, err := s.GetUserByID(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("esperava ErrNotFound, obteve %v", err)
	}
}

func TestInMemoryStore_Files_OwnerScoped(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	ctx := context.Background()

	f := &models.File{Filename: "t.txt", FilePath: "uploads/1_t.txt", FileSize: 10, OwnerID: 1}
	if err := s.CreateFile(ctx, f); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if f.ID == 0 {
		t.Fatalf("esperava ID gerado, obteve 0")
	}

	// Dono enxerga o arquivo
	if _, err := s.GetFileByID(ctx, f.ID, 1); err != nil {
		t.Fatalf("GetFileByID (dono): %v", err)
	}

	// Outro usuário não enxerga, nem consegue remover
	if _, err := s.GetFileByID(ctx, f.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("esperava ErrNotFound para outro dono, obteve %v", err)
	}
	if err := s.DeleteFile(ctx, f.ID, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("esperava ErrNotFound para outro dono, obteve %v", err)
	}
}

func TestInMemoryStore_ListFilesByOwner_Pagination(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := s.CreateFile(ctx, &models.File{Filename: name, OwnerID: 1}); err != nil {
			t.Fatalf("CreateFile: %v", err)
		}
	}
	// Arquivo de outro dono não deve aparecer
	if err := s.CreateFile(ctx, &models.File{Filename: "x.txt", OwnerID: 2}); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	files, err := s.ListFilesByOwner(ctx, 1, 0, 100)
	if err != nil {
		t.Fatalf("ListFilesByOwner: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("esperava 3 arquivos, obteve %d", len(files))
	}
	// Ordenação estável por ID
	if files[0].Filename != "a.txt" || files[2].Filename != "c.txt" {
		t.Fatalf("ordem inesperada: %q ... %q", files[0].Filename, files[2].Filename)
	}

	page, err := s.ListFilesByOwner(ctx, 1, 1, 1)
	if err != nil {
		t.Fatalf("ListFilesByOwner (paginado): %v", err)
	}
	if len(page) != 1 || page[0].Filename != "b.txt" {
		t.Fatalf("página inesperada: %+v", page)
	}
}

func TestInMemoryStore_DeleteFile(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	ctx := context.Background()

	f := &models.File{Filename: "t.txt", OwnerID: 1}
	if err := s.CreateFile(ctx, f); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	if err := s.DeleteFile(ctx, f.ID, 1); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := s.GetFileByID(ctx, f.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("esperava ErrNotFound após remoção, obteve %v", err)
	}
	if err := s.DeleteFile(ctx, f.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("esperava ErrNotFound na segunda remoção, obteve %v", err)
	}
}
