package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clouddrive-backend/internal/api"
	"clouddrive-backend/internal/auth"
	"clouddrive-backend/internal/config"
	"clouddrive-backend/internal/repository"
	"clouddrive-backend/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Carregar o arquivo .env antes da configuração.
	// Em produção o app pode rodar sem .env, desde que as variáveis
	// estejam setadas no ambiente (ex: no Docker/K8s)
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Não foi possível carregar o arquivo .env: %v. (Usando variáveis de ambiente existentes)", err)
	}

	// 2. Carregar Configuração
	var cfg config.Config
	if err := config.Load(&cfg); err != nil {
		log.Fatalf("Falha ao carregar configuração: %v", err)
	}

	// 3. Inicializar Camada de Repositório (PostgreSQL)
	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelInit()

	store, err := repository.NewPostgresStore(initCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Falha ao conectar ao banco de dados: %v", err)
	}
	defer store.Close()
	log.Println("Conectado ao PostgreSQL!")

	// 4. Rodar Migrations
	migrationSQL, err := os.ReadFile("./migrations/001_init.sql")
	if err != nil {
		log.Fatalf("Falha ao ler arquivo de migração: %v", err)
	}

	if err := store.RunMigrations(initCtx, string(migrationSQL)); err != nil {
		log.Printf("Aviso ao rodar migrações: %v. (Continuando...)", err)
	} else {
		log.Println("Migrações do banco de dados aplicadas com sucesso.")
	}

	// 5. Inicializar Camada de Autenticação
	tokenService, err := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenExpiryMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("Falha ao iniciar TokenService: %v", err)
	}

	// 6. Inicializar Armazenamento em Disco
	storage, err := service.NewDiskStorage(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Falha ao iniciar armazenamento em disco: %v", err)
	}

	// 7. Inicializar Camada de Serviço
	userService := service.NewUserService(store, tokenService)
	fileService := service.NewFileService(store, storage)

	// 8. Inicializar Camada de API
	handler := api.NewHandler(userService, fileService, tokenService, cfg.CORSOrigin)

	// 9. Configurar Servidor HTTP
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      handler.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Iniciar Servidor
	go func() {
		log.Printf("Servidor iniciado em http://localhost:%d", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Erro ao iniciar servidor: %v", err)
		}
	}()

	// Aguardar sinal de interrupção
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Recebido sinal de desligamento, encerrando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Erro no graceful shutdown: %v", err)
	}
	log.Println("Servidor encerrado.")
}
