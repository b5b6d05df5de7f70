package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config armazena a configuração da aplicação
type Config struct {
	ServerPort         int    `envconfig:"SERVER_PORT" default:"8080"`
	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`
	TokenExpiryMinutes int    `envconfig:"TOKEN_EXPIRY_MINUTES" default:"30"`
	DatabaseURL        string `envconfig:"DATABASE_URL" required:"true"`
	UploadDir          string `envconfig:"UPLOAD_DIR" default:"uploads"`
	CORSOrigin         string `envconfig:"CORS_ORIGIN" default:"http://localhost:8080"`
}

// Load carrega a configuração das variáveis de ambiente
func Load(cfg *Config) error {
	return envconfig.Process("", cfg)
}
