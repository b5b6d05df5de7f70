package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"clouddrive-backend/internal/auth"
	"clouddrive-backend/internal/models"
	"clouddrive-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indica e-mail ou senha incorretos no login.
// Mensagem genérica para evitar enumeração de usuários.
var ErrInvalidCredentials = errors.New("credenciais inválidas")

// UserService lida com a lógica de negócios de usuários
type UserService struct {
	store        repository.UserStore
	tokenService *auth.TokenService
}

// NewUserService cria um novo serviço de usuário
func NewUserService(store repository.UserStore, tokenService *auth.TokenService) *UserService {
	return &UserService{
		store:        store,
		tokenService: tokenService,
	}
}

// Register cria um novo usuário.
// Retorna repository.ErrEmailTaken se o e-mail já estiver registrado.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	// Verificar se o e-mail já está em uso. A constraint UNIQUE do store
	// fecha a corrida entre registros concorrentes do mesmo e-mail.
	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, repository.ErrEmailTaken
	}

	// Gerar hash da senha (nunca armazene senha em texto plano)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Erro ao gerar hash bcrypt: %v", err)
		return nil, fmt.Errorf("erro interno ao processar senha")
	}

	user := &models.User{
		Email:          email,
		HashedPassword: string(hash),
		IsActive:       true,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, err
		}
		log.Printf("Erro ao salvar usuário no store: %v", err)
		return nil, fmt.Errorf("erro interno ao salvar usuário")
	}

	return user, nil
}

// Authenticate valida as credenciais de um usuário e retorna o usuário
// apenas quando a senha confere com o hash armazenado
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Comparar a senha fornecida com o hash armazenado (comparação do bcrypt
	// é resistente a timing attacks)
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login autentica um usuário e retorna um token JWT
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokenService.NewToken(user.Email)
	if err != nil {
		log.Printf("Erro ao gerar token JWT: %v", err)
		return "", fmt.Errorf("erro interno ao gerar token")
	}

	return token, nil
}

// GetUserByEmail busca um usuário pelo e-mail (usado pelo middleware de auth)
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.store.GetUserByEmail(ctx, email)
}
