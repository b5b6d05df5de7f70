package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService lida com a lógica de JWT
type TokenService struct {
	jwtSecret []byte
	expiry    time.Duration
}

// NewTokenService cria um novo serviço de token com o tempo de vida
// padrão dos tokens emitidos
func NewTokenService(secret string, expiry time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("segredo JWT não pode ser vazio")
	}
	if expiry <= 0 {
		return nil, fmt.Errorf("tempo de expiração do token deve ser positivo")
	}
	return &TokenService{
		jwtSecret: []byte(secret),
		expiry:    expiry,
	}, nil
}

// NewToken cria um novo token JWT para um usuário.
// O 'sub' carrega o e-mail do usuário; um novo token é gerado a cada login.
func (s *TokenService) NewToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"jti": uuid.New().String(), // ID único por emissão
		"iat": now.Unix(),
		"exp": now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken verifica a validade de um token string
// (assinatura HMAC e expiração)
func (s *TokenService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Verifica o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("falha ao parsear token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token inválido")
	}

	return token, nil
}

// GetSubjectFromToken extrai o 'sub' (e-mail do usuário) de um token validado
func (s *TokenService) GetSubjectFromToken(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("não foi possível ler claims do token")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("não foi possível obter 'sub' do token: %w", err)
	}

	if sub == "" {
		return "", fmt.Errorf("'sub' do token está vazio")
	}

	return sub, nil
}
