package client

import (
	"context"
	"log"
	"time"

	"github.com/connective/backend/models"
	"github.com/connective/backend/pkg/schedule"
)

// ChatSession, iki kullanıcı arasındaki canlı sohbet döngüsü.
//
// Push kanalı yoktur — session sabit gecikmeli polling yapar: her tur
// konuşmayı çeker, yeni mesaj geldiyse callback'i tetikler, karşı
// taraftan gelen okunmamış mesajları okundu işaretler ve server'da bir
// bildirim süpürmesi tetikler. Bir turun bitişi ile sonrakinin başlangıcı
// arasında tam interval kadar beklenir — yavaş bir tur üst üste binmez.
//
// Durdurma iki yoldan: Stop() çağrısı veya Start'a verilen context'in
// iptali. İkisi de aynı yere çıkar — poll goroutine'i temiz kapanır.
type ChatSession struct {
	client   *Client
	selfID   string
	otherID  string
	onUpdate func([]models.Message)

	task      *schedule.Task
	lastCount int
}

// DefaultPollInterval, iki poll turu arasındaki varsayılan bekleme.
const DefaultPollInterval = 1 * time.Second

// NewChatSession, constructor.
//
// client: login olmuş bir Client (token'lı).
// selfID: oturum kullanıcısının ID'si; otherID: karşı taraf.
// interval: poll aralığı; 0 verilirse DefaultPollInterval kullanılır.
// onUpdate: konuşma büyüdüğünde güncel mesaj listesiyle çağrılır.
// nil olabilir — o zaman session sadece okundu işaretleme ve süpürme yapar.
func NewChatSession(client *Client, selfID, otherID string, interval time.Duration, onUpdate func([]models.Message)) *ChatSession {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	s := &ChatSession{
		client:   client,
		selfID:   selfID,
		otherID:  otherID,
		onUpdate: onUpdate,
	}
	s.task = schedule.NewFixedDelay("chat-poll", interval, s.poll)
	return s
}

// Start, polling döngüsünü başlatır. İlk tur hemen çalışır.
// ctx iptal edilirse döngü kendiliğinden durur.
func (s *ChatSession) Start(ctx context.Context) {
	s.task.Start(ctx)
}

// Stop, döngüyü durdurur ve devam eden turun bitmesini bekler.
// Start ile simetrik — birden fazla çağrılması güvenlidir.
func (s *ChatSession) Stop() {
	s.task.Stop()
}

// poll, tek bir polling turu. Hata toleranslıdır: herhangi bir adım
// başarısız olursa loglar ve turu bitirir — bir sonraki tur baştan dener.
func (s *ChatSession) poll(ctx context.Context) {
	messages, err := s.client.GetConversation(ctx, s.otherID)
	if err != nil {
		log.Printf("[chat] poll error: %v", err)
		return
	}

	// Büyüme tespiti: mesaj sayısı arttıysa görünüm güncellenmeli.
	// Mesajlar append-only olduğu için sayı karşılaştırması yeterli.
	if len(messages) > s.lastCount {
		s.lastCount = len(messages)
		if s.onUpdate != nil {
			s.onUpdate(messages)
		}
	}

	// Karşı taraftan bize gelen okunmamış mesajları okundu işaretle.
	// Session açıkken kullanıcı konuşmaya bakıyor kabul edilir.
	unreadIDs := []string{}
	for _, m := range messages {
		if m.Sender == s.otherID && m.Receiver == s.selfID && !m.Read {
			unreadIDs = append(unreadIDs, m.ID)
		}
	}
	if err := s.client.MarkRead(ctx, unreadIDs); err != nil {
		log.Printf("[chat] mark read error: %v", err)
	}

	// Piggy-back süpürme: aktif bir sohbet varken bildirim kuyruğu da
	// akar. Başarısızlık turu bozmaz.
	if err := s.client.TriggerSweep(ctx); err != nil {
		log.Printf("[chat] sweep trigger error: %v", err)
	}
}
