package auth

import (
	"testing"
	"time"
)

func TestNewTokenService_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenService("", time.Hour); err == nil {
		t.Fatalf("esperava erro para segredo vazio, obteve nil")
	}
}

func TestNewToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService("super-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	tok, err := svc.NewToken("a@x.com")
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	parsed, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	email, err := svc.GetSubjectFromToken(parsed)
	if err != nil {
		t.Fatalf("GetSubjectFromToken: %v", err)
	}
	if email != "a@x.com" {
		t.Fatalf("subject incorreto: got %q want %q", email, "a@x.com")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	// Construção direta para emitir um token já expirado
	svc := &TokenService{jwtSecret: []byte("secret"), expiry: -time.Minute}

	tok, err := svc.NewToken("a@x.com")
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	if _, err := svc.ValidateToken(tok); err == nil {
		t.Fatalf("esperava erro para token expirado, obteve nil")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer, err := NewTokenService("right-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	verifier, err := NewTokenService("wrong-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	tok, err := issuer.NewToken("a@x.com")
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	if _, err := verifier.ValidateToken(tok); err == nil {
		t.Fatalf("esperava erro para assinatura inválida, obteve nil")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	if _, err := svc.ValidateToken("not.a.jwt"); err == nil {
		t.Fatalf("esperava erro para token malformado, obteve nil")
	}
}
