// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Her ayar grubu ayrı bir struct — her struct tek bir concern'ü temsil eder.
// Böylece os.Getenv çağrıları koda dağılmaz, tek bir Config nesnesi taşınır.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	Notify   NotifyConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/connective.db)
}

// JWTConfig, oturum token ayarları.
type JWTConfig struct {
	Secret            string // Token imzalama anahtarı — GİZLİ TUTULMALI
	AccessTokenExpiry int    // Dakika cinsinden (varsayılan: 60)
}

// EmailConfig, Resend üzerinden bildirim email'i ayarları.
// Üçü birden dolu değilse email gönderimi devre dışı kalır —
// süpürme yine çalışır ama mail atmaz ve notified flag'lerine dokunmaz.
type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string // Resend'de doğrulanmış domain altında olmalı
	AppURL       string // Sign-in linklerinde kullanılan public URL
}

// NotifyConfig, okunmamış mesaj bildirim süpürmesi ayarları.
//
// GraceWindow: bir mesajın email bildirimine uygun hale gelmesi için
// ulaşması gereken minimum yaş. Kaynak sistemde 2 dakika ve 24 saat olmak
// üzere iki farklı sabit vardı; kanonik değer 2 dakikadır ve buradan
// yapılandırılır.
//
// SweepInterval: 0 ise in-process süpürme zamanlayıcısı çalışmaz — süpürme
// yalnızca POST /api/notifications/sweep ile (cron vb.) tetiklenir.
type NotifyConfig struct {
	GraceWindow   time.Duration
	SweepInterval time.Duration
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler; dosya yoksa sessizce devam eder.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "9090"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	graceWindow, err := time.ParseDuration(getEnv("NOTIFY_GRACE_WINDOW", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_GRACE_WINDOW: %w", err)
	}
	if graceWindow <= 0 {
		return nil, fmt.Errorf("NOTIFY_GRACE_WINDOW must be positive")
	}

	// "0" → in-process süpürme kapalı
	sweepInterval, err := time.ParseDuration(getEnv("NOTIFY_SWEEP_INTERVAL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_SWEEP_INTERVAL: %w", err)
	}
	if sweepInterval < 0 {
		return nil, fmt.Errorf("NOTIFY_SWEEP_INTERVAL must not be negative")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/connective.db"),
		},
		JWT: JWTConfig{
			Secret:            jwtSecret,
			AccessTokenExpiry: accessExpiry,
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("RESEND_FROM", ""),
			AppURL:       getEnv("APP_URL", ""),
		},
		Notify: NotifyConfig{
			GraceWindow:   graceWindow,
			SweepInterval: sweepInterval,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:9090").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
