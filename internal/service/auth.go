package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ferdyn/votacion/internal/pkg/jwthelper"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates the anfitrión. There are no user accounts:
// one shared password (stored as a bcrypt hash in config) guards the
// administration surface.
type AuthService struct {
	passwordHash  string
	jwtSigningKey string
}

func NewAuthService(passwordHash, jwtSigningKey string) *AuthService {
	return &AuthService{
		passwordHash:  passwordHash,
		jwtSigningKey: jwtSigningKey,
	}
}

func (s *AuthService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := jwthelper.CreateToken(s.jwtSigningKey, "anfitrion")
	if err != nil {
		return "", fmt.Errorf("jwthelper.CreateToken -> %w", err)
	}

	return token, nil
}
