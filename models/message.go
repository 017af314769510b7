package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Message, iki kullanıcı arasındaki yönlü bir mesajı temsil eder.
// DB'deki "messages" tablosunun Go karşılığı — append-only log.
//
// Flag yaşam döngüsü:
//   - Read: alıcı mesajı görüntülediğinde false → true (bir kez; tekrar
//     işaretleme no-op'tur).
//   - Notified: bildirim süpürmesi mesajı işlediğinde false → true (bir kez).
//
// ID ve CreatedAt insert sonrası değişmez; mesaj silinmez.
type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	Notified  bool      `json:"notified"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation, bir kullanıcının bir karşı tarafla olan konuşmasının türetilmiş
// özeti. Saklanmaz — her istekte mesaj logu + kullanıcı dizininden hesaplanır,
// bu yüzden altta yatan veriden asla sapamaz.
type Conversation struct {
	DirectoryEntry
	UnreadCount int `json:"unread_count"`
}

// NotificationCandidate, grace window'u aşmış okunmamış + bildirilmemiş bir
// mesajın alıcı email'i ile join'i. Sadece süpürme sırasında geçici olarak
// var olur.
type NotificationCandidate struct {
	MessageID string `json:"message_id"`
	Email     string `json:"email"`
}

// SendMessageRequest, yeni mesaj gönderme isteği.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// Validate, SendMessageRequest'in geçerli olup olmadığını kontrol eder.
// Boş metin reddedilir — validation her store mutasyonundan önce çalışır.
func (r *SendMessageRequest) Validate() error {
	r.Text = strings.TrimSpace(r.Text)
	textLen := utf8.RuneCountInString(r.Text)
	if textLen < 1 {
		return fmt.Errorf("message text is required")
	}
	if textLen > 2000 {
		return fmt.Errorf("message text must be at most 2000 characters")
	}
	return nil
}

// MarkReadRequest, toplu okundu işaretleme isteği.
// Boş liste geçerlidir — güvenli bir no-op olarak ele alınır.
type MarkReadRequest struct {
	MessageIDs []string `json:"message_ids"`
}
