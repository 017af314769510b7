// Package repository, veri erişim katmanını barındırır.
//
// Her aggregate için bir interface ve bir SQLite implementasyonu vardır.
// Service katmanı interface'lere bağımlıdır — testlerde fake implementasyon
// geçilebilir, concrete SQLite detayları sızmaz.
package repository

import (
	"context"
	"time"

	"github.com/connective/backend/models"
)

// MessageRepository, append-only mesaj logunun sahibidir.
//
// Mutasyon yüzeyi bilinçli olarak dardır: Insert, MarkRead ve MarkNotified.
// Üçü de tek satır / küçük batch koşullu update'lerdir — explicit lock
// olmadan interleaving altında güvenli olacak şekilde seçilmiştir.
type MessageRepository interface {
	// Insert, yeni bir mesajı read=0, notified=0 ve server timestamp ile ekler.
	// msg.CreatedAt insert sonrası DB'nin yazdığı değerle doldurulur.
	Insert(ctx context.Context, msg *models.Message) error

	// GetConversation, {userA, userB} sırasız çiftine ait tüm mesajları
	// timestamp artan sırada döner (eşit timestamp'te insert sırası korunur).
	// Simetriktir: GetConversation(A,B) == GetConversation(B,A).
	GetConversation(ctx context.Context, userA, userB string) ([]models.Message, error)

	// GetDistinctCounterparts, kullanıcının mesajlaştığı tüm karşı tarafları
	// ilk görülme sırasıyla, tekrarsız döner.
	GetDistinctCounterparts(ctx context.Context, userID string) ([]string, error)

	// GetUnreadByReceiver, alıcısı userID olan okunmamış mesajları döner.
	// Konuşma listesindeki unread sayıları bu kümeden saf fonksiyonla hesaplanır.
	GetUnreadByReceiver(ctx context.Context, userID string) ([]models.Message, error)

	// GetUnreadUnnotified, read=0 AND notified=0 olup olderThan'dan yaşlı
	// mesajları alıcı email'i ile join'leyip en bayat önce döner.
	GetUnreadUnnotified(ctx context.Context, olderThan time.Duration) ([]models.NotificationCandidate, error)

	// MarkRead, verilen mesajları okundu işaretler. Koşullu update'tir:
	// sadece receiver=userID ve read=0 satırlar etkilenir, notified'a dokunmaz.
	// Boş id listesi no-op'tur. Idempotent — tekrar çağrılması güvenlidir.
	MarkRead(ctx context.Context, userID string, messageIDs []string) error

	// MarkNotified, verilen mesajları bildirildi işaretler (notified=0 olanları)
	// ve etkilenen satır sayısını döner. İki süpürmenin yarışması durumunda
	// her satır en fazla bir kez sayılır.
	MarkNotified(ctx context.Context, messageIDs []string) (int64, error)
}
