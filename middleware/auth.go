// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware zincir şeklinde çalışır: Auth → Handler. Kendi işini yapar
// (token doğrula), sonra next'i çağırır; hata varsa next çağrılmaz.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/connective/backend/handlers"
	"github.com/connective/backend/pkg"
	"github.com/connective/backend/repository"
	"github.com/connective/backend/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
	}
}

// Require, JWT token zorunlu kılan middleware.
// Token yoksa veya geçersizse → 401 Unauthorized.
//
// Header formatı: Authorization: Bearer <token>
//
// Akış: header'ı oku → prefix'i kaldır → token'ı doğrula → kullanıcıyı
// DB'den getir (token geçerli ama kullanıcı silinmiş olabilir) →
// context'e ekle → next.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found")
			return
		}

		// Hash context'te taşınmaz
		user.PasswordHash = ""

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
