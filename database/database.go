// Package database, SQLite bağlantısını ve migration sistemini yönetir.
//
// database/sql standart kütüphanesi ortak bir arayüz sağlar; SQLite driver'ı
// blank import ile kayıt olur. modernc.org/sqlite pure-Go'dur — CGO gerekmez,
// her platformda derlenir.
package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// recoverableErrors, migration sırasında tolere edilebilen hata pattern'ları.
// Yarım kalmış bir migration tekrar çalıştırıldığında "duplicate column name"
// hatası verir — kolon zaten eklenmiş demektir, güvenle atlanır.
var recoverableErrors = []string{
	"duplicate column name",
}

// DB, veritabanı bağlantısını saran struct.
// *sql.DB thread-safe bir connection pool'dur; tüm repository'ler
// aynı instance'ı paylaşır.
type DB struct {
	Conn *sql.DB
}

// New, yeni bir SQLite bağlantısı açar ve migration'ları çalıştırır.
//
// dbPath: SQLite dosya yolu (":memory:" test için geçerlidir).
// migrationsFS: Migration SQL dosyalarını içeren fs.FS (embed.FS veya os.DirFS).
func New(dbPath string, migrationsFS fs.FS) (*DB, error) {
	// Veritabanı dosyasının dizinini oluştur (yoksa)
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// foreign_keys: SQLite'ta varsayılan KAPALI — açıyoruz.
	// journal_mode=WAL: eşzamanlı okuma/yazma için.
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// :memory: modunda pool'daki her yeni bağlantı AYRI boş bir veritabanıdır.
	// Tek bağlantıya sabitlemek şemanın kaybolmasını önler.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{Conn: conn}

	if err := db.runMigrations(migrationsFS); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("[database] connected and migrations applied")
	return db, nil
}

// Close, veritabanı bağlantısını kapatır.
func (db *DB) Close() error {
	return db.Conn.Close()
}

// runMigrations, migrations/ dizinindeki SQL dosyalarını sırayla çalıştırır.
// Dosya isimleri sıralıdır: 001_init.sql, 002_..., ...
//
// schema_migrations tablosu hangi dosyaların uygulandığını takip eder —
// idempotent olmayan migration'lar (ALTER TABLE vb.) tekrar çalışmaz.
func (db *DB) runMigrations(migrationsFS fs.FS) error {
	if _, err := db.Conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	applied := make(map[string]bool)
	rows, err := db.Conn.Query("SELECT filename FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate migration rows: %w", err)
	}

	for _, file := range sqlFiles {
		if applied[file] {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		// Statement-by-statement çalıştır — SQLite'ta her Exec ayrı
		// autocommit'tir, yarım kalan migration recoverable hatalarla kurtarılır.
		if err := db.execStatements(file, string(content)); err != nil {
			return err
		}

		if _, err := db.Conn.Exec(
			"INSERT INTO schema_migrations (filename) VALUES (?)", file,
		); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", file, err)
		}

		log.Printf("[database] migration applied: %s", file)
	}

	return nil
}

// execStatements, bir migration dosyasındaki SQL'i statement-by-statement çalıştırır.
func (db *DB) execStatements(filename, content string) error {
	statements := splitStatements(content)

	for i, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := db.Conn.Exec(stmt); err != nil {
			errMsg := err.Error()
			recoverable := false
			for _, pattern := range recoverableErrors {
				if strings.Contains(errMsg, pattern) {
					recoverable = true
					break
				}
			}

			if recoverable {
				log.Printf("[database] %s: statement %d skipped (recoverable: %s)", filename, i+1, errMsg)
				continue
			}

			return fmt.Errorf("failed to execute migration %s (statement %d): %w", filename, i+1, err)
		}
	}

	return nil
}

// splitStatements, SQL metnini noktalı virgül ile statement'lara böler.
// String literal içindeki noktalı virgüller ('...;...') ve '--' yorum
// satırları yoksayılır — yorumdaki bir noktalı virgül statement'ı bölmez.
func splitStatements(sqlText string) []string {
	var statements []string
	var current strings.Builder
	inString := false

	for i := 0; i < len(sqlText); i++ {
		ch := sqlText[i]

		// '--' yorumu: satır sonuna kadar atla (string içi hariç).
		// Satır sonu karakteri korunur — ayraç olarak bir sonraki
		// iterasyonda yazılır.
		if !inString && ch == '-' && i+1 < len(sqlText) && sqlText[i+1] == '-' {
			for i+1 < len(sqlText) && sqlText[i+1] != '\n' {
				i++
			}
			continue
		}

		if ch == '\'' {
			// '' escape'ini handle et
			if inString && i+1 < len(sqlText) && sqlText[i+1] == '\'' {
				current.WriteByte(ch)
				current.WriteByte(sqlText[i+1])
				i++
				continue
			}
			inString = !inString
		}

		if ch == ';' && !inString {
			s := strings.TrimSpace(current.String())
			if s != "" {
				statements = append(statements, s)
			}
			current.Reset()
			continue
		}

		current.WriteByte(ch)
	}

	s := strings.TrimSpace(current.String())
	if s != "" {
		statements = append(statements, s)
	}

	return statements
}
