package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/connective/backend/pkg/email"
	"github.com/connective/backend/repository"
)

// NotifyService, okunmamış mesaj bildirim süpürmesi interface'i.
//
// Mesaj başına flag state machine'i:
//
//	(read=0, notified=0) --[alıcı görüntüledi]--> (read=1, notified=0)  bu akış için terminal
//	(read=0, notified=0) --[yaş > grace, sweep]--> (read=0, notified=1)
//	(read=1, notified=0) : süpürmeden önce okunduysa bildirim atlanır —
//	                       okunmuş mesaj için email gönderilmez.
type NotifyService interface {
	// Sweep, bir süpürme döngüsü çalıştırır: tara, grupla, bildir, işaretle.
	// Store sorgusu başarısız olursa süpürme iptal olur; tek bir alıcıya
	// gönderim hatası ise izole edilir — sonuç kısmi başarı taşır.
	Sweep(ctx context.Context) (*SweepResult, error)
}

// RecipientOutcome, bir alıcı için gönderim sonucu.
type RecipientOutcome struct {
	Email string `json:"email"`
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

// SweepResult, bir süpürmenin özeti.
// Attempted: süpürmenin email göndermeyi denediği alıcılar (tekrarsız).
// Notified: notified flag'i BU süpürme tarafından çevrilen mesaj sayısı —
// yarışan bir süpürmenin önce davrandığı satırlar burada sayılmaz.
type SweepResult struct {
	Attempted []RecipientOutcome `json:"attempted"`
	Notified  int64              `json:"notified"`
}

type notifyService struct {
	messageRepo repository.MessageRepository
	sender      email.EmailSender // nil olabilir — email yapılandırılmamışsa
	graceWindow time.Duration
}

// NewNotifyService, constructor.
//
// sender nil ise süpürme hiçbir yan etki üretmeden boş sonuç döner:
// mailer olmadan mesajları notified işaretlemek bildirimleri sonsuza dek
// kaybettirir, o yüzden adaylar bir sonraki (yapılandırılmış) süpürmeye kalır.
func NewNotifyService(messageRepo repository.MessageRepository, sender email.EmailSender, graceWindow time.Duration) NotifyService {
	return &notifyService{
		messageRepo: messageRepo,
		sender:      sender,
		graceWindow: graceWindow,
	}
}

// Sweep, bir süpürme döngüsü çalıştırır.
//
// Adımlar:
// 1. Grace window'u aşmış read=0 AND notified=0 mesajları alıcı email'i ile çek.
// 2. Email'leri tekilleştir — bir adresin birden fazla bayat mesajı olabilir,
//    süpürme başına adres başına en fazla BİR email gönderilir.
// 3. Her tekil alıcıya bildirim email'i gönder. Hata loglanır, süpürme devam eder.
// 4. TÜM aday mesajları notified işaretle — gönderim başarısından bağımsız.
//    Kabul edilen trade-off: email'i başarısız olan mesaj tekrar denenmez;
//    tekrarlanan süpürmelerde çifte bildirim riskine tercih edilir.
func (s *notifyService) Sweep(ctx context.Context) (*SweepResult, error) {
	candidates, err := s.messageRepo.GetUnreadUnnotified(ctx, s.graceWindow)
	if err != nil {
		// Store hatası süpürmeyi iptal eder
		return nil, err
	}

	result := &SweepResult{Attempted: []RecipientOutcome{}}
	if len(candidates) == 0 {
		return result, nil
	}

	if s.sender == nil {
		log.Printf("[notify] sweep skipped: %d candidate(s) but email is not configured", len(candidates))
		return result, nil
	}

	// Alıcı email'lerini tekilleştir — ilk görülme sırası korunur.
	// Kaynak veride boşluk içeren adresler görüldü; temizlenir.
	seen := make(map[string]bool)
	var recipients []string
	for _, c := range candidates {
		addr := strings.ReplaceAll(c.Email, " ", "")
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		recipients = append(recipients, addr)
	}

	for _, addr := range recipients {
		outcome := RecipientOutcome{Email: addr}
		if err := s.sender.SendUnreadNotification(ctx, addr); err != nil {
			// Alıcı başına izole hata — kalan alıcılar işlenmeye devam eder
			log.Printf("[notify] failed to send to %s: %v", addr, err)
			outcome.Error = err.Error()
		} else {
			outcome.Sent = true
		}
		result.Attempted = append(result.Attempted, outcome)
	}

	// Gönderim sonuçlarından bağımsız olarak tüm adayları işaretle.
	// Koşullu update (WHERE notified=0) sayesinde yarışan süpürmelerle
	// çakışma idempotent'tir.
	messageIDs := make([]string, len(candidates))
	for i, c := range candidates {
		messageIDs[i] = c.MessageID
	}

	notified, err := s.messageRepo.MarkNotified(ctx, messageIDs)
	if err != nil {
		return nil, err
	}
	result.Notified = notified

	log.Printf("[notify] sweep complete: %d candidate(s), %d recipient(s), %d flagged", len(candidates), len(recipients), notified)
	return result, nil
}
