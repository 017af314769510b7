package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/connective/backend/models"
	"github.com/connective/backend/pkg"
	"github.com/connective/backend/pkg/ratelimit"
	"github.com/connective/backend/services"
)

// MessageHandler, mesajlaşma endpoint'lerini yöneten struct.
type MessageHandler struct {
	messageService services.MessageService
	sendLimiter    *ratelimit.MessageRateLimiter
}

// NewMessageHandler, constructor.
// sendLimiter: mesaj spam koruması. nil ise rate limiting devre dışı kalır.
func NewMessageHandler(messageService services.MessageService, sendLimiter *ratelimit.MessageRateLimiter) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		sendLimiter:    sendLimiter,
	}
}

// Send godoc
// POST /api/messages/{otherID}
// Body: { "text": "..." }
// Gönderen oturumdan gelir; alıcı path'ten.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}
	otherID := r.PathValue("otherID")

	if h.sendLimiter != nil && !h.sendLimiter.Allow(user.ID) {
		retryAfter := h.sendLimiter.RetryAfterSeconds(user.ID)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "sending messages too fast, slow down")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.messageService.Send(r.Context(), user.ID, otherID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, msg)
}

// GetConversation godoc
// GET /api/messages/{otherID}
// Oturum kullanıcısı ile otherID arasındaki mesajları sıralı döner.
func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}
	otherID := r.PathValue("otherID")

	messages, err := h.messageService.GetConversation(r.Context(), user.ID, otherID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, messages)
}

// ListConversations godoc
// GET /api/conversations
// Oturum kullanıcısının konuşma özetlerini (unread sayılarıyla) döner.
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	conversations, err := h.messageService.ListConversations(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, conversations)
}

// MarkRead godoc
// POST /api/messages/read
// Body: { "message_ids": ["...", ...] }
// Boş liste geçerli bir no-op'tur. Idempotent — tekrar çağrılabilir.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.messageService.MarkRead(r.Context(), user.ID, req.MessageIDs); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]bool{"marked": true})
}
