package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/connective/backend/models"
)

// sqliteMessageRepo, MessageRepository interface'inin SQLite implementasyonu.
type sqliteMessageRepo struct {
	db *sql.DB
}

// NewSQLiteMessageRepo, constructor — interface döner.
func NewSQLiteMessageRepo(db *sql.DB) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

// sqlTimeFormat, CURRENT_TIMESTAMP'ın ürettiği format.
// Cutoff karşılaştırmaları string olarak yapılır — iki taraf da aynı formatta
// olmalı, yoksa lexicographic karşılaştırma bozulur.
const sqlTimeFormat = "2006-01-02 15:04:05"

// Insert, yeni bir mesajı ekler. read ve notified şema default'u ile 0 başlar,
// timestamp'i server (DB) atar — RETURNING ile geri okunur.
func (r *sqliteMessageRepo) Insert(ctx context.Context, msg *models.Message) error {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO messages (id, sender, receiver, text) VALUES (?, ?, ?, ?) RETURNING created_at",
		msg.ID, msg.Sender, msg.Receiver, msg.Text,
	).Scan(&msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	// created_at SQLite default — timezone issue fix
	msg.CreatedAt = msg.CreatedAt.UTC()
	msg.Read = false
	msg.Notified = false
	return nil
}

// GetConversation, {userA, userB} sırasız çiftinin tüm mesajlarını döner.
// İki yönlü OR filtresi sorguyu simetrik yapar; rowid tiebreak'i eşit
// timestamp'lerde insert sırasını korur.
func (r *sqliteMessageRepo) GetConversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	query := `
		SELECT id, sender, receiver, text, read, notified, created_at
		FROM messages
		WHERE (sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)
		ORDER BY created_at ASC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, userA, userB, userB, userA)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// GetDistinctCounterparts, kullanıcının mesajlaştığı karşı tarafları döner.
//
// CASE ifadesi her satırı "karşı taraf" id'sine indirger; GROUP BY tekilleştirir,
// MIN(rowid) ise karşı tarafın İLK görüldüğü mesaja göre deterministik bir
// sıralama verir (first-seen order).
func (r *sqliteMessageRepo) GetDistinctCounterparts(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT CASE WHEN sender = ? THEN receiver ELSE sender END AS counterpart,
		       MIN(rowid) AS first_seen
		FROM messages
		WHERE sender = ? OR receiver = ?
		GROUP BY counterpart
		ORDER BY first_seen ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get counterparts: %w", err)
	}
	defer rows.Close()

	var counterparts []string
	for rows.Next() {
		var id string
		var firstSeen int64
		if err := rows.Scan(&id, &firstSeen); err != nil {
			return nil, fmt.Errorf("failed to scan counterpart: %w", err)
		}
		counterparts = append(counterparts, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counterparts: %w", err)
	}

	if counterparts == nil {
		counterparts = []string{}
	}
	return counterparts, nil
}

// GetUnreadByReceiver, alıcısı userID olan okunmamış mesajları döner.
func (r *sqliteMessageRepo) GetUnreadByReceiver(ctx context.Context, userID string) ([]models.Message, error) {
	query := `
		SELECT id, sender, receiver, text, read, notified, created_at
		FROM messages
		WHERE receiver = ? AND read = 0
		ORDER BY created_at ASC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unread messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// GetUnreadUnnotified, bildirim süpürmesinin aday kümesini döner:
// read=0 AND notified=0 AND yaş > olderThan, alıcı email'i ile join'li.
// En bayat mesaj önce gelir — sıralama doğruluk için değil, mevcut davranışı
// korumak içindir.
func (r *sqliteMessageRepo) GetUnreadUnnotified(ctx context.Context, olderThan time.Duration) ([]models.NotificationCandidate, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(sqlTimeFormat)

	query := `
		SELECT m.id, u.email
		FROM messages m
		JOIN users u ON u.id = m.receiver
		WHERE m.read = 0 AND m.notified = 0 AND m.created_at < ?
		ORDER BY m.created_at DESC, m.rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to get unnotified messages: %w", err)
	}
	defer rows.Close()

	var candidates []models.NotificationCandidate
	for rows.Next() {
		var c models.NotificationCandidate
		if err := rows.Scan(&c.MessageID, &c.Email); err != nil {
			return nil, fmt.Errorf("failed to scan notification candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification candidates: %w", err)
	}

	if candidates == nil {
		candidates = []models.NotificationCandidate{}
	}
	return candidates, nil
}

// MarkRead, mesajları okundu işaretler.
//
// Koşullu, set-based update: receiver filtresi başka kullanıcıların
// mesajlarını korur, read=0 filtresi update'i idempotent yapar.
// notified kolonuna dokunulmaz.
func (r *sqliteMessageRepo) MarkRead(ctx context.Context, userID string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	query := "UPDATE messages SET read = 1 WHERE receiver = ? AND read = 0 AND id IN (" +
		placeholders(len(messageIDs)) + ")"

	args := make([]any, 0, len(messageIDs)+1)
	args = append(args, userID)
	for _, id := range messageIDs {
		args = append(args, id)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// MarkNotified, mesajları bildirildi işaretler ve etkilenen satır sayısını döner.
//
// notified=0 filtresi compare-and-set semantiği verir: yarışan iki süpürmeden
// flag'i ilk çeviren "kazanır", diğerinin update'i o satırı etkilemez.
// İki kez true yazmak zararsızdır.
func (r *sqliteMessageRepo) MarkNotified(ctx context.Context, messageIDs []string) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}

	query := "UPDATE messages SET notified = 1 WHERE notified = 0 AND id IN (" +
		placeholders(len(messageIDs)) + ")"

	args := make([]any, 0, len(messageIDs))
	for _, id := range messageIDs {
		args = append(args, id)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages notified: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected, nil
}

// scanMessages, bir mesaj sorgusunun satırlarını Message slice'ına okur.
func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID, &msg.Sender, &msg.Receiver, &msg.Text,
			&msg.Read, &msg.Notified, &msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.CreatedAt = msg.CreatedAt.UTC()
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

// placeholders, IN (...) için n adet soru işareti üretir.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
