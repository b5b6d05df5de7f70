package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"clouddrive-backend/internal/auth"
	"clouddrive-backend/internal/models"
	"clouddrive-backend/internal/repository"
	"clouddrive-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler gerencia as dependências para os handlers HTTP
type Handler struct {
	userService  *service.UserService
	fileService  *service.FileService
	tokenService *auth.TokenService
	validate     *validator.Validate
	corsOrigin   string
}

// NewHandler cria uma nova instância do Handler
func NewHandler(
	userSvc *service.UserService,
	fileSvc *service.FileService,
	tokenSvc *auth.TokenService,
	corsOrigin string,
) *Handler {
	return &Handler{
		userService:  userSvc,
		fileService:  fileSvc,
		tokenService: tokenSvc,
		validate:     validator.New(),
		corsOrigin:   corsOrigin,
	}
}

// === Funções Auxiliares de Resposta ===

func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}

func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Erro ao serializar JSON: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"Erro interno ao serializar resposta"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// currentUser recupera o usuário autenticado injetado pelo AuthMiddleware
func currentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	return user, ok && user != nil
}

// fileIDParam extrai e converte o parâmetro {fileID} da rota
func fileIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "fileID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("ID de arquivo inválido: %q", raw)
	}
	return id, nil
}

// === Schemas de Resposta da API ===

type (
	// TokenResponse é a resposta do POST /token
	TokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
)

// === Handler de Login ===

// handleLogin (POST /token) — aceita formulário username(e-mail)+password
// e emite um token bearer com validade fixa
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Formulário inválido")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		h.respondWithError(w, http.StatusBadRequest, "Campos 'username' e 'password' são obrigatórios")
		return
	}

	token, err := h.userService.Login(r.Context(), username, password)
	if err != nil {
		// Challenge marker para clientes que entendem OAuth2
		w.Header().Set("WWW-Authenticate", "Bearer")
		h.respondWithError(w, http.StatusUnauthorized, "E-mail ou senha incorretos")
		return
	}

	h.respondWithJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// === Handlers de Usuário ===

// handleRegisterUser (POST /users)
func (h *Handler) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Payload JSON inválido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			h.respondWithError(w, http.StatusBadRequest, "E-mail já registrado")
			return
		}
		h.respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondWithJSON(w, http.StatusCreated, user)
}

// handleMe (GET /users/me) — retorna o perfil do próprio usuário autenticado
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Contexto de usuário inválido")
		return
	}

	h.respondWithJSON(w, http.StatusOK, user)
}

// === Handlers de Arquivo ===

// handleUploadFile (POST /files/upload) — recebe multipart e grava em
// streaming no disco, sem carregar o arquivo inteiro em memória
func (h *Handler) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Contexto de usuário inválido")
		return
	}

	mr, err := r.MultipartReader()
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, "Requisição multipart inválida")
		return
	}

	// Procura a parte "file" e envia o stream direto para o serviço
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Requisição multipart inválida")
			return
		}

		if part.FormName() != "file" {
			part.Close()
			continue
		}

		if part.FileName() == "" {
			part.Close()
			h.respondWithError(w, http.StatusBadRequest, "Nome do arquivo não informado")
			return
		}

		file, upErr := h.fileService.Upload(r.Context(), user, part.FileName(), part)
		part.Close()
		if upErr != nil {
			h.respondWithError(w, http.StatusInternalServerError, upErr.Error())
			return
		}

		h.respondWithJSON(w, http.StatusCreated, file)
		return
	}

	h.respondWithError(w, http.StatusBadRequest, "Campo 'file' não encontrado no formulário")
}

// handleListFiles (GET /files?skip&limit)
func (h *Handler) handleListFiles(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Contexto de usuário inválido")
		return
	}

	// Parâmetros ausentes ou inválidos caem nos padrões do serviço
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	files, err := h.fileService.List(r.Context(), user, skip, limit)
	if err != nil {
		h.respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondWithJSON(w, http.StatusOK, files)
}

// handleDownloadFile (GET /files/{fileID}/download) — serve os bytes crus
// do arquivo, com o nome original no Content-Disposition
func (h *Handler) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Contexto de usuário inválido")
		return
	}

	fileID, err := fileIDParam(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, content, err := h.fileService.Download(r.Context(), user, fileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.respondWithError(w, http.StatusNotFound, "Arquivo não encontrado")
			return
		}
		h.respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(file.FileSize, 10))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, content); err != nil {
		// Headers já foram enviados; só resta logar
		log.Printf("Erro ao enviar conteúdo do arquivo %d: %v", file.ID, err)
	}
}

// handleDeleteFile (DELETE /files/{fileID})
func (h *Handler) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		h.respondWithError(w, http.StatusUnauthorized, "Contexto de usuário inválido")
		return
	}

	fileID, err := fileIDParam(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.fileService.Delete(r.Context(), user, fileID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.respondWithError(w, http.StatusNotFound, "Arquivo não encontrado")
			return
		}
		h.respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleRoot (GET /) — mensagem de boas-vindas / health-check
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to Cloud Drive API",
	})
}
