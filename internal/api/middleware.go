package api

import (
	"context"
	"net/http"
	"strings"
)

// contextKey é um tipo privado para evitar colisões de chaves no contexto
type contextKey string

const userContextKey = contextKey("user")

// AuthMiddleware é um middleware para validar o token JWT.
// Qualquer falha (header ausente, formato errado, assinatura inválida,
// token expirado, usuário inexistente ou inativo) resulta em 401.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Obter o header "Authorization"
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.respondWithError(w, http.StatusUnauthorized, "Token de autorização não fornecido")
			return
		}

		// 2. Verificar se o formato é "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			h.respondWithError(w, http.StatusUnauthorized, "Formato do token inválido")
			return
		}
		tokenString := parts[1]

		// 3. Validar o token (assinatura e expiração)
		token, err := h.tokenService.ValidateToken(tokenString)
		if err != nil {
			h.respondWithError(w, http.StatusUnauthorized, "Token inválido")
			return
		}

		// 4. Obter o e-mail (sub) do token
		email, err := h.tokenService.GetSubjectFromToken(token)
		if err != nil {
			h.respondWithError(w, http.StatusUnauthorized, "Token inválido (claims)")
			return
		}

		// 5. Verificar se o usuário ainda existe no DB
		user, err := h.userService.GetUserByEmail(r.Context(), email)
		if err != nil {
			h.respondWithError(w, http.StatusUnauthorized, "Usuário do token não encontrado")
			return
		}

		// 6. Usuário desativado não passa, mesmo com token válido
		if !user.IsActive {
			h.respondWithError(w, http.StatusUnauthorized, "Usuário inativo")
			return
		}

		// 7. Armazenar o usuário no contexto da requisição
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
