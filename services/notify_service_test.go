package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/connective/backend/models"
)

func TestSweepDedupesRecipients(t *testing.T) {
	msgRepo := &fakeMessageRepo{
		candidates: []models.NotificationCandidate{
			{MessageID: "m1", Email: "alice@example.com"},
			{MessageID: "m2", Email: "alice @example.com"}, // boşluklu varyant — aynı adres
			{MessageID: "m3", Email: "bob@example.com"},
		},
	}
	sender := &fakeEmailSender{}
	svc := NewNotifyService(msgRepo, sender, 2*time.Minute)

	result, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	// Adres başına en fazla bir email
	if len(sender.sent) != 2 {
		t.Fatalf("sent %v, want exactly 2 emails", sender.sent)
	}
	if sender.sent[0] != "alice@example.com" || sender.sent[1] != "bob@example.com" {
		t.Errorf("unexpected recipients: %v", sender.sent)
	}

	// Ama TÜM aday mesajlar işaretlenir
	if len(msgRepo.notifiedIDs) != 3 {
		t.Fatalf("flagged %v, want all 3 candidate ids", msgRepo.notifiedIDs)
	}
	if result.Notified != 3 {
		t.Errorf("result.Notified = %d, want 3", result.Notified)
	}
	if len(result.Attempted) != 2 {
		t.Errorf("result.Attempted has %d entries, want 2", len(result.Attempted))
	}
}

func TestSweepPartialFailureStillFlagsAll(t *testing.T) {
	msgRepo := &fakeMessageRepo{
		candidates: []models.NotificationCandidate{
			{MessageID: "m1", Email: "broken@example.com"},
			{MessageID: "m2", Email: "ok@example.com"},
		},
	}
	sender := &fakeEmailSender{failFor: map[string]bool{"broken@example.com": true}}
	svc := NewNotifyService(msgRepo, sender, 2*time.Minute)

	result, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	// Bozuk alıcı kalanları engellemez
	if len(sender.sent) != 1 || sender.sent[0] != "ok@example.com" {
		t.Fatalf("sent %v, want only ok@example.com", sender.sent)
	}

	// Gönderim hatasına rağmen her iki mesaj da işaretlenir
	if len(msgRepo.notifiedIDs) != 2 {
		t.Fatalf("flagged %v, want both candidate ids", msgRepo.notifiedIDs)
	}

	if len(result.Attempted) != 2 {
		t.Fatalf("result.Attempted has %d entries, want 2", len(result.Attempted))
	}
	if result.Attempted[0].Sent || result.Attempted[0].Error == "" {
		t.Errorf("expected failed outcome for broken recipient: %+v", result.Attempted[0])
	}
	if !result.Attempted[1].Sent {
		t.Errorf("expected success outcome for ok recipient: %+v", result.Attempted[1])
	}
}

func TestSweepStoreErrorAborts(t *testing.T) {
	storeErr := errors.New("disk is on fire")
	msgRepo := &fakeMessageRepo{candidateErr: storeErr}
	sender := &fakeEmailSender{}
	svc := NewNotifyService(msgRepo, sender, 2*time.Minute)

	_, err := svc.Sweep(context.Background())
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("no email should be sent after store failure, sent %v", sender.sent)
	}
	if msgRepo.notifiedCalls != 0 {
		t.Errorf("MarkNotified called %d times after store failure, want 0", msgRepo.notifiedCalls)
	}
}

func TestSweepNilSenderDefersCandidates(t *testing.T) {
	msgRepo := &fakeMessageRepo{
		candidates: []models.NotificationCandidate{
			{MessageID: "m1", Email: "alice@example.com"},
		},
	}
	svc := NewNotifyService(msgRepo, nil, 2*time.Minute)

	result, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	// Mailer yokken flag çevrilmez — adaylar sonraki süpürmeye kalır
	if msgRepo.notifiedCalls != 0 {
		t.Errorf("MarkNotified called %d times without a sender, want 0", msgRepo.notifiedCalls)
	}
	if result.Notified != 0 || len(result.Attempted) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestSweepEmptyCandidateSetIsQuiet(t *testing.T) {
	msgRepo := &fakeMessageRepo{}
	sender := &fakeEmailSender{}
	svc := NewNotifyService(msgRepo, sender, 2*time.Minute)

	result, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(sender.sent) != 0 || msgRepo.notifiedCalls != 0 {
		t.Error("empty candidate set must produce no side effects")
	}
	if result.Attempted == nil {
		t.Error("Attempted should be an empty slice, not nil")
	}
}

func TestSweepSecondRunFindsNothingNew(t *testing.T) {
	msgRepo := &fakeMessageRepo{
		candidates: []models.NotificationCandidate{
			{MessageID: "m1", Email: "alice@example.com"},
		},
	}
	sender := &fakeEmailSender{}
	svc := NewNotifyService(msgRepo, sender, 2*time.Minute)
	ctx := context.Background()

	if _, err := svc.Sweep(ctx); err != nil {
		t.Fatalf("first Sweep failed: %v", err)
	}

	// İşaretlenen mesajlar aday kümesinden düşer — gerçek repo'da
	// notified=0 filtresi yapar, fake'te elle temizliyoruz.
	msgRepo.candidates = nil

	result, err := svc.Sweep(ctx)
	if err != nil {
		t.Fatalf("second Sweep failed: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("second sweep re-sent email, total sent: %v", sender.sent)
	}
	if result.Notified != 0 {
		t.Errorf("second sweep Notified = %d, want 0", result.Notified)
	}
}
