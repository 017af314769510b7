// Package services, business logic katmanını barındırır.
//
// Service, handler (HTTP) ile repository (DB) arasında oturur. Tüm iş
// kuralları burada yaşar: validation, şifre hash'leme, token üretimi,
// konuşma türetme, bildirim süpürmesi.
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — repository interface'i kullanır.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/connective/backend/models"
	"github.com/connective/backend/pkg"
	"github.com/connective/backend/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService, oturum iş mantığı interface'i.
//
// Mesajlaşma çekirdeği için auth bir dış collaborator'dır — burada yalnızca
// "gönderen oturumdan gelir" sözleşmesini gerçekleyecek kadarı vardır:
// kayıt (profil seed'i ile), giriş ve access token doğrulama.
// Refresh token rotasyonu, şifre sıfırlama vb. bilinçli olarak yok.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*AuthTokens, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error)
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// AuthTokens, login/register sonrası dönen token + kullanıcı.
type AuthTokens struct {
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessExp time.Duration
}

// NewAuthService, constructor.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, accessExpMinutes int) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		accessExp: time.Duration(accessExpMinutes) * time.Minute,
	}
}

// Register, yeni kullanıcı + profil kaydı oluşturur.
//
// Kullanıcı ve profil satırı tek transaction'da yazılır (repo katmanında) —
// dizinde görünmeyen yarım hesap oluşmaz.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Bcrypt hash (cost=12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	entry := &models.DirectoryEntry{
		Name:     req.Name,
		Location: req.Location,
		Kind:     req.Kind,
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, entry); err != nil {
		return nil, err
	}

	return s.generateTokens(user)
}

// Login, email + şifre ile giriş yapar.
//
// "user not found" ve "wrong password" aynı mesajla döner —
// hangi email'lerin kayıtlı olduğu sızdırılmaz.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", pkg.ErrBadRequest)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
	}

	return s.generateTokens(user)
}

// ValidateAccessToken, access token'ı doğrular ve claim'leri döner.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// generateTokens, kullanıcı için imzalı access token üretir.
func (s *authService) generateTokens(user *models.User) (*AuthTokens, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	// Hash response'a taşınmaz
	userCopy := *user
	userCopy.PasswordHash = ""

	return &AuthTokens{
		AccessToken: signed,
		User:        userCopy,
	}, nil
}
