// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/connective/backend/handlers"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Message *handlers.MessageHandler
	Notify  *handlers.NotifyHandler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters) *Handlers {
	return &Handlers{
		Auth:    handlers.NewAuthHandler(svcs.Auth),
		Message: handlers.NewMessageHandler(svcs.Message, limiters.Message),
		Notify:  handlers.NewNotifyHandler(svcs.Notify),
	}
}
