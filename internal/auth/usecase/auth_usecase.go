package usecase

import (
	"errors"
	"time"

	authdto "rcc-backend/internal/auth/dto"
	"rcc-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthUsecase guards the dashboard with a single shared password. With
// no password hash configured the dashboard runs open; there is exactly
// one user and no accounts to manage.
type AuthUsecase interface {
	Enabled() bool
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	ValidateToken(token string) error
}

type authUsecase struct {
	config *config.Config
}

func NewAuthUsecase(cfg *config.Config) AuthUsecase {
	return &authUsecase{config: cfg}
}

func (u *authUsecase) Enabled() bool {
	return u.config.DashboardPasswordHash != ""
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	if !u.Enabled() {
		return nil, errors.New("authentication is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.config.DashboardPasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid password")
	}

	expiresAt := time.Now().Add(u.config.JWTExpiry)
	claims := jwt.MapClaims{
		"sub": "owner",
		"jti": uuid.New().String(),
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

func (u *authUsecase) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid or expired token")
	}
	return nil
}
