package handlers

import (
	"net/http"

	"github.com/connective/backend/pkg"
	"github.com/connective/backend/services"
)

// NotifyHandler, bildirim süpürmesi endpoint'ini yöneten struct.
type NotifyHandler struct {
	notifyService services.NotifyService
}

// NewNotifyHandler, constructor.
func NewNotifyHandler(notifyService services.NotifyService) *NotifyHandler {
	return &NotifyHandler{notifyService: notifyService}
}

// Sweep godoc
// POST /api/notifications/sweep
//
// Bir süpürme döngüsü tetikler. Harici bir cron'dan veya chat client'ının
// piggy-back çağrısından gelir. Eşzamanlı tetiklenmesi güvenlidir —
// flag update'leri koşulludur (bkz. NotifyService).
//
// Response: { "attempted": [{email, sent, error?}], "notified": n }
func (h *NotifyHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.notifyService.Sweep(r.Context())
	if err != nil {
		// Store-level hata — end user görmez (background operasyon),
		// ama operasyonel görünürlük için handler 500 + log zinciri döner.
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}
