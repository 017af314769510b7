// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"log"
	"time"

	"github.com/connective/backend/config"
	"github.com/connective/backend/pkg/email"
	"github.com/connective/backend/pkg/ratelimit"
	"github.com/connective/backend/services"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth    services.AuthService
	Message services.MessageService
	Notify  services.NotifyService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Message *ratelimit.MessageRateLimiter
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
func initServices(repos *Repositories, cfg *config.Config) (*Services, *RateLimiters) {
	// ─── Email sender (opsiyonel) ───
	//
	// Üç ayar birden dolu değilse sender nil kalır. NotifyService nil
	// sender ile süpürmeyi atlar ve flag'lere dokunmaz — adaylar mailer
	// aktif olana kadar kuyrukta bekler.
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" && cfg.Email.AppURL != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Printf("[main] email sender enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		log.Println("[main] email sender disabled (RESEND_API_KEY, RESEND_FROM or APP_URL not set)")
	}

	authService := services.NewAuthService(repos.User, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	messageService := services.NewMessageService(repos.Message, repos.User)
	notifyService := services.NewNotifyService(repos.Message, emailSender, cfg.Notify.GraceWindow)

	// ─── Rate Limiters ───
	// 5 mesaj / 5 saniye pencere, aşımda 15 saniye cooldown.
	messageLimiter := ratelimit.NewMessageRateLimiter(5, 5*time.Second, 15*time.Second)

	svcs := &Services{
		Auth:    authService,
		Message: messageService,
		Notify:  notifyService,
	}

	limiters := &RateLimiters{
		Message: messageLimiter,
	}

	return svcs, limiters
}
