package services

import (
	"context"
	"fmt"
	"time"

	"github.com/connective/backend/models"
	"github.com/connective/backend/pkg"
)

// fakeMessageRepo, MessageRepository'nin in-memory test implementasyonu.
// Davranışlar alanlarla yönlendirilir — hata enjeksiyonu dahil.
type fakeMessageRepo struct {
	messages     []models.Message
	candidates   []models.NotificationCandidate
	candidateErr error
	notifiedErr  error

	insertCalls   int
	markReadIDs   []string
	markedForUser string
	notifiedIDs   []string
	notifiedCalls int
}

func (f *fakeMessageRepo) Insert(ctx context.Context, msg *models.Message) error {
	f.insertCalls++
	msg.CreatedAt = time.Now().UTC()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageRepo) GetConversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	result := []models.Message{}
	for _, m := range f.messages {
		if (m.Sender == userA && m.Receiver == userB) || (m.Sender == userB && m.Receiver == userA) {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) GetDistinctCounterparts(ctx context.Context, userID string) ([]string, error) {
	seen := make(map[string]bool)
	counterparts := []string{}
	for _, m := range f.messages {
		var other string
		switch userID {
		case m.Sender:
			other = m.Receiver
		case m.Receiver:
			other = m.Sender
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			counterparts = append(counterparts, other)
		}
	}
	return counterparts, nil
}

func (f *fakeMessageRepo) GetUnreadByReceiver(ctx context.Context, userID string) ([]models.Message, error) {
	result := []models.Message{}
	for _, m := range f.messages {
		if m.Receiver == userID && !m.Read {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) GetUnreadUnnotified(ctx context.Context, olderThan time.Duration) ([]models.NotificationCandidate, error) {
	if f.candidateErr != nil {
		return nil, f.candidateErr
	}
	return f.candidates, nil
}

func (f *fakeMessageRepo) MarkRead(ctx context.Context, userID string, messageIDs []string) error {
	f.markedForUser = userID
	f.markReadIDs = append(f.markReadIDs, messageIDs...)
	return nil
}

func (f *fakeMessageRepo) MarkNotified(ctx context.Context, messageIDs []string) (int64, error) {
	f.notifiedCalls++
	if f.notifiedErr != nil {
		return 0, f.notifiedErr
	}
	f.notifiedIDs = append(f.notifiedIDs, messageIDs...)
	return int64(len(messageIDs)), nil
}

// fakeUserRepo, UserRepository'nin in-memory test implementasyonu.
type fakeUserRepo struct {
	users   map[string]*models.User
	entries map[string]models.DirectoryEntry
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]*models.User),
		entries: make(map[string]models.DirectoryEntry),
	}
}

func (f *fakeUserRepo) addUser(id, email string, entry *models.DirectoryEntry) {
	f.users[id] = &models.User{ID: id, Email: email, PasswordHash: "hash"}
	if entry != nil {
		entry.UserID = id
		entry.Email = email
		f.entries[id] = *entry
	}
}

func (f *fakeUserRepo) CreateWithProfile(ctx context.Context, user *models.User, entry *models.DirectoryEntry) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
	}
	user.CreatedAt = time.Now().UTC()
	f.users[user.ID] = user
	entry.UserID = user.ID
	entry.Email = user.Email
	f.entries[user.ID] = *entry
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
}

func (f *fakeUserRepo) GetDirectoryEntry(ctx context.Context, userID string) (*models.DirectoryEntry, error) {
	entry, ok := f.entries[userID]
	if !ok {
		return nil, fmt.Errorf("%w: no profile for user", pkg.ErrNotFound)
	}
	return &entry, nil
}

func (f *fakeUserRepo) GetDirectoryEntries(ctx context.Context, userIDs []string) (map[string]models.DirectoryEntry, error) {
	result := make(map[string]models.DirectoryEntry)
	for _, id := range userIDs {
		if entry, ok := f.entries[id]; ok {
			result[id] = entry
		}
	}
	return result, nil
}

// fakeEmailSender, gönderilen adresleri kaydeder; failFor'daki adresler
// için hata döner.
type fakeEmailSender struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeEmailSender) SendUnreadNotification(ctx context.Context, toEmail string) error {
	if f.failFor[toEmail] {
		return fmt.Errorf("smtp rejected %s", toEmail)
	}
	f.sent = append(f.sent, toEmail)
	return nil
}
