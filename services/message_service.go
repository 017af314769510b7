package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/connective/backend/models"
	"github.com/connective/backend/pkg"
	"github.com/connective/backend/repository"
	"github.com/google/uuid"
)

// MessageService, mesajlaşma iş mantığı interface'i.
//
// Mesaj:
//   - Send: Yeni mesaj gönder (validation önce, store mutasyonu sonra)
//   - GetConversation: İki kullanıcı arasındaki mesajları sıralı getir
//
// Türetilmiş görünümler:
//   - ListConversations: Karşı taraf listesi + dizin join + unread sayıları
//
// Okuma durumu:
//   - MarkRead: Toplu, idempotent okundu işaretleme
type MessageService interface {
	Send(ctx context.Context, senderID, receiverID string, req *models.SendMessageRequest) (*models.Message, error)
	GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	MarkRead(ctx context.Context, userID string, messageIDs []string) error
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewMessageService, constructor.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Send, yeni bir mesaj gönderir.
//
// Validation store mutasyonundan ÖNCE çalışır: boş metin ve eksik/geçersiz
// id'ler hiçbir yan etki oluşmadan reddedilir. Alıcının var olması kontrol
// edilir; sender == receiver yapısal olarak engellenmez (kaynak davranışı).
func (s *messageService) Send(ctx context.Context, senderID, receiverID string, req *models.SendMessageRequest) (*models.Message, error) {
	if strings.TrimSpace(senderID) == "" || strings.TrimSpace(receiverID) == "" {
		return nil, fmt.Errorf("%w: sender and receiver are required", pkg.ErrBadRequest)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Alıcı gerçek bir kullanıcı mı?
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: receiver does not exist", pkg.ErrBadRequest)
		}
		return nil, err
	}

	msg := &models.Message{
		ID:       uuid.NewString(),
		Sender:   senderID,
		Receiver: receiverID,
		Text:     req.Text,
	}

	if err := s.messageRepo.Insert(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// GetConversation, userID ile otherID arasındaki tüm mesajları timestamp
// artan sırada döner. Sorgu simetriktir — parametre sırası sonucu değiştirmez.
func (s *messageService) GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	if strings.TrimSpace(otherID) == "" {
		return nil, fmt.Errorf("%w: other user id is required", pkg.ErrBadRequest)
	}
	return s.messageRepo.GetConversation(ctx, userID, otherID)
}

// ListConversations, kullanıcının konuşma listesini türetir.
//
// Akış:
// 1. Mesaj logundan tekrarsız karşı taraf id'leri (ilk görülme sırasıyla)
// 2. Dizin join — profili olmayan karşı taraf sessizce atlanır
// 3. Unread sayıları: okunmamış mesajlardan saf fonksiyonla hesaplanır
//
// Garanti: karşı taraf başına en fazla bir kayıt; hiç mesaj alışverişi
// olmamış kullanıcı listede görünmez (1. adım gereği).
func (s *messageService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	counterparts, err := s.messageRepo.GetDistinctCounterparts(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(counterparts) == 0 {
		return []models.Conversation{}, nil
	}

	entries, err := s.userRepo.GetDirectoryEntries(ctx, counterparts)
	if err != nil {
		return nil, err
	}

	unreadMessages, err := s.messageRepo.GetUnreadByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}
	unreadCounts := ComputeUnreadCounts(unreadMessages, userID)

	conversations := make([]models.Conversation, 0, len(counterparts))
	for _, counterpartID := range counterparts {
		entry, ok := entries[counterpartID]
		if !ok {
			// Dizinde profili yok — listeden çıkar
			continue
		}
		conversations = append(conversations, models.Conversation{
			DirectoryEntry: entry,
			UnreadCount:    unreadCounts[counterpartID],
		})
	}

	return conversations, nil
}

// MarkRead, mesajları okundu işaretler.
//
// At-least-once sözleşmesi: chat oturumu her poll'da aynı id kümesiyle tekrar
// çağırabilir — update koşullu olduğundan durum bozulmaz. Boş küme güvenli
// bir no-op'tur. notified flag'ine hiçbir koşulda dokunulmaz.
func (s *messageService) MarkRead(ctx context.Context, userID string, messageIDs []string) error {
	ids := make([]string, 0, len(messageIDs))
	for _, id := range messageIDs {
		if strings.TrimSpace(id) != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	return s.messageRepo.MarkRead(ctx, userID, ids)
}

// ComputeUnreadCounts, okunmamış mesaj sayılarını kaynak veriden hesaplayan
// saf fonksiyondur: karşı taraf id → userID'ye gönderilmiş okunmamış mesaj
// sayısı. Artımlı sayaç mutasyonu yerine her çağrıda yeniden hesaplanır —
// sayaçlar mesaj logundan asla sapamaz.
func ComputeUnreadCounts(messages []models.Message, userID string) map[string]int {
	counts := make(map[string]int)
	for _, msg := range messages {
		if msg.Receiver == userID && !msg.Read {
			counts[msg.Sender]++
		}
	}
	return counts
}
