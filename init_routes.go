// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// auth helper'ı JWT zorunlu endpoint'leri AuthMiddleware.Require ile sarar.
package main

import (
	"fmt"
	"net/http"

	"github.com/connective/backend/middleware"
	"github.com/connective/backend/repository"
	"github.com/connective/backend/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı. Örnek: "POST /api/messages/read" → "POST /api/messages/{otherID}"
// öncesinde, yoksa Go router "read" kelimesini bir otherID olarak yorumlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
) {
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"connective"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	// User
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))

	// Messages — literal "read" path'i parametrik path'ten önce
	mux.Handle("POST /api/messages/read", auth(h.Message.MarkRead))
	mux.Handle("POST /api/messages/{otherID}", auth(h.Message.Send))
	mux.Handle("GET /api/messages/{otherID}", auth(h.Message.GetConversation))

	// Conversations
	mux.Handle("GET /api/conversations", auth(h.Message.ListConversations))

	// Notifications — süpürmeyi manuel veya harici cron'dan tetiklemek için
	mux.Handle("POST /api/notifications/sweep", auth(h.Notify.Sweep))
}
