package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/simple-inventory/internal/application/dto"
	"github.com/jhoicas/simple-inventory/internal/domain"
	"github.com/jhoicas/simple-inventory/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials cuenta del operador. Si PasswordHash está vacío se hashea Password al construir.
type Credentials struct {
	Email        string
	Password     string
	PasswordHash string
}

// AuthUseCase login del operador del catálogo contra credenciales de configuración.
type AuthUseCase struct {
	email  string
	hash   []byte
	jwtCfg JWTConfig
}

// ErrNoCredentials no hay contraseña configurada; ningún login puede prosperar.
var ErrNoCredentials = errors.New("auth: credenciales de administrador no configuradas")

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(creds Credentials, jwtCfg JWTConfig) (*AuthUseCase, error) {
	hash := []byte(creds.PasswordHash)
	if len(hash) == 0 {
		if creds.Password == "" {
			return nil, ErrNoCredentials
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH inválido: %w", err)
	}
	return &AuthUseCase{email: strings.TrimSpace(creds.Email), hash: hash, jwtCfg: jwtCfg}, nil
}

// Login verifica email/password y genera el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !strings.EqualFold(strings.TrimSpace(in.Email), uc.email) {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.hash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60}, nil
}
