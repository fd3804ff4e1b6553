package service

import (
	"context"
	"strings"
	"time"

	"ref-intake-be/internal/config"
	"ref-intake-be/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// authService authenticates the single operator account configured through
// the environment. There is no user table; respondents are anonymous.
type authService struct {
	cfg config.AuthConfig
}

func NewAuthService(cfg config.AuthConfig) IAuthService {
	return &authService{cfg: cfg}
}

func (s *authService) LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if !strings.EqualFold(req.Email, s.cfg.AdminEmail) {
		return nil, &dto.UnauthorizedError{Reason: "invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, &dto.UnauthorizedError{Reason: "invalid credentials"}
	}

	ttl := time.Duration(s.cfg.TokenTTLMinutes) * time.Minute
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": s.cfg.AdminEmail,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.JwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     signed,
		ExpiresIn: int64(ttl.Seconds()),
	}, nil
}
