// Package models, uygulamanın domain modellerini tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda API'den
// gelen/giden verilerin şeklini belirler. json tag'leri serialize davranışını
// kontrol eder.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

// ProfileKind, kullanıcı dizinindeki profil türünü temsil eder.
// Bir kullanıcı tam olarak bir türe sahiptir — iki tür birbirinden ayrıktır.
type ProfileKind string

const (
	ProfileKindBusiness   ProfileKind = "business"
	ProfileKindIndividual ProfileKind = "individual"
)

// User, bir kullanıcı hesabını temsil eder.
// Profil detayları (isim, konum, logo) business_profiles veya
// individual_profiles tablosunda yaşar — bkz. DirectoryEntry.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // API response'a ASLA dahil edilmez
	CreatedAt    time.Time `json:"created_at"`
}

// DirectoryEntry, kullanıcı dizininin birleşik görünümü.
// Business profili için Name = company_name, Logo = logo_url;
// individual için Name = name, Logo = profile_picture_url.
// Konuşma listesi bu görünüm üzerinden zenginleştirilir.
type DirectoryEntry struct {
	UserID   string      `json:"user_id"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Location string      `json:"location"`
	Logo     *string     `json:"logo"` // Nullable — logo yüklenmemiş olabilir
	Kind     ProfileKind `json:"kind"`
}

// emailRegex, basit bir format kontrolüdür — RFC-tam doğrulama değil.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterRequest, kayıt olurken gelen veri.
// Kind'a göre Name ya şirket adı ya kişi adıdır.
type RegisterRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Kind     ProfileKind `json:"kind"`
	Name     string      `json:"name"`
	Location string      `json:"location"`
}

// Validate, RegisterRequest'in geçerli olup olmadığını kontrol eder.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	if r.Kind != ProfileKindBusiness && r.Kind != ProfileKindIndividual {
		return fmt.Errorf("kind must be %q or %q", ProfileKindBusiness, ProfileKindIndividual)
	}

	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("name must be between 1 and 100 characters")
	}

	r.Location = strings.TrimSpace(r.Location)
	if utf8.RuneCountInString(r.Location) > 100 {
		return fmt.Errorf("location must be at most 100 characters")
	}

	return nil
}

// LoginRequest, giriş isteği.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenClaims, access token'ın JWT payload'ı.
type TokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
