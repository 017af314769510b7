package repository

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/connective/backend/database"
	"github.com/connective/backend/models"
)

// newTestDB, in-memory SQLite açar ve gömülü migration'ları uygular.
// Her test kendi izole veritabanını alır.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("failed to access embedded migrations: %v", err)
	}

	db, err := database.New(":memory:", migrationsFS)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db.Conn
}

// seedUser, profil olmadan ham bir kullanıcı satırı ekler.
// Mesaj FK'ları için yeterlidir; dizin testleri CreateWithProfile kullanır.
func seedUser(t *testing.T, conn *sql.DB, id, email string) {
	t.Helper()
	_, err := conn.Exec(
		"INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)",
		id, email, "test-hash",
	)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", id, err)
	}
}

// sendMessage, repo üzerinden mesaj ekler ve ekleneni döner.
func sendMessage(t *testing.T, repo MessageRepository, id, sender, receiver, text string) *models.Message {
	t.Helper()
	msg := &models.Message{ID: id, Sender: sender, Receiver: receiver, Text: text}
	if err := repo.Insert(context.Background(), msg); err != nil {
		t.Fatalf("failed to insert message %s: %v", id, err)
	}
	return msg
}

// backdate, bir mesajın created_at'ini geçmişe taşır.
// Örn: backdate(t, conn, "m1", "-5 minutes")
func backdate(t *testing.T, conn *sql.DB, messageID, offset string) {
	t.Helper()
	res, err := conn.Exec(
		"UPDATE messages SET created_at = datetime('now', ?) WHERE id = ?",
		offset, messageID,
	)
	if err != nil {
		t.Fatalf("failed to backdate message %s: %v", messageID, err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		t.Fatalf("backdate affected %d rows for message %s, want 1", n, messageID)
	}
}

// messageFlags, bir mesajın read/notified flag'lerini okur.
func messageFlags(t *testing.T, conn *sql.DB, messageID string) (read, notified bool) {
	t.Helper()
	err := conn.QueryRow(
		"SELECT read, notified FROM messages WHERE id = ?", messageID,
	).Scan(&read, &notified)
	if err != nil {
		t.Fatalf("failed to read flags for message %s: %v", messageID, err)
	}
	return read, notified
}
