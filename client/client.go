// Package client, connective backend API'sine erişen Go client'ını içerir.
//
// İki parçadan oluşur:
//   - Client: HTTP API çağrıları (login, mesaj gönder/listele, okundu işaretle)
//   - ChatSession: sabit gecikmeli polling ile canlı sohbet döngüsü
//
// Client, server'ın APIResponse zarfını çözer: { success, data, error }.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/connective/backend/models"
)

// Client, connective API'sine yapılan HTTP çağrılarını sarar.
// Login sonrası access token'ı içinde taşır ve her isteğe ekler.
//
// Client tek goroutine'den kullanılmak üzere tasarlanmıştır — token
// alanı mutex'siz yazılır. ChatSession zaten tek poll goroutine'i kullanır.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

// NewClient, constructor.
// baseURL örn: "http://localhost:9090" (sonda slash olmadan).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// apiEnvelope, server'ın standart response zarfı.
// Data önce raw tutulur, çağıran hedef tipe göre tekrar çözer.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do, tek bir API çağrısı yapar: body'yi JSON'a çevir, token ekle,
// isteği gönder, zarfı çöz, data'yı out'a aktar.
// out nil ise data kısmı atlanır (sadece başarı kontrolü).
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%s %s: decode response (status %d): %w", method, path, resp.StatusCode, err)
	}

	if !envelope.Success {
		return fmt.Errorf("%s %s: server error (status %d): %s", method, path, resp.StatusCode, envelope.Error)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
	}

	return nil
}

// loginResponse, auth endpoint'lerinin data kısmı.
type loginResponse struct {
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

// Login, email/şifre ile oturum açar ve token'ı client'a kaydeder.
// Döndürülen User, sonraki çağrılarda selfID olarak kullanılır.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.accessToken = resp.AccessToken
	return &resp.User, nil
}

// SendMessage, otherID'ye bir mesaj gönderir.
func (c *Client) SendMessage(ctx context.Context, otherID, text string) (*models.Message, error) {
	var msg models.Message
	err := c.do(ctx, http.MethodPost, "/api/messages/"+otherID, models.SendMessageRequest{
		Text: text,
	}, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetConversation, oturum kullanıcısı ile otherID arasındaki tüm
// mesajları zaman sıralı döner.
func (c *Client) GetConversation(ctx context.Context, otherID string) ([]models.Message, error) {
	messages := []models.Message{}
	if err := c.do(ctx, http.MethodGet, "/api/messages/"+otherID, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// ListConversations, konuşma özetlerini (unread sayılarıyla) döner.
func (c *Client) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	conversations := []models.Conversation{}
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// MarkRead, verilen mesajları okundu işaretler. Boş liste no-op'tur
// ve istek hiç gönderilmez.
func (c *Client) MarkRead(ctx context.Context, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/api/messages/read", models.MarkReadRequest{
		MessageIDs: messageIDs,
	}, nil)
}

// TriggerSweep, server tarafında bir bildirim süpürmesi tetikler.
// ChatSession her poll turunda piggy-back olarak çağırır.
func (c *Client) TriggerSweep(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/sweep", nil, nil)
}
