package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/connective/backend/database"
	"github.com/connective/backend/models"
	"github.com/connective/backend/pkg"
)

// sqliteUserRepo, UserRepository interface'inin SQLite implementasyonu.
type sqliteUserRepo struct {
	db *sql.DB
}

// NewSQLiteUserRepo, constructor — interface döner.
func NewSQLiteUserRepo(db *sql.DB) UserRepository {
	return &sqliteUserRepo{db: db}
}

// directoryQuery, iki ayrık profil tablosunu tek dizin görünümünde birleştirir.
// Business satırları önce gelir — bir kullanıcının bir şekilde iki profili
// varsa ilk eşleşme kazanır (pratikte türler birbirini dışlar).
const directoryQuery = `
	SELECT u.id, u.email, b.company_name AS name, b.location, b.logo_url AS logo, 'business' AS kind
	FROM users u
	JOIN business_profiles b ON b.user_id = u.id
	WHERE u.id IN (%s)
	UNION ALL
	SELECT u.id, u.email, i.name, i.location, i.profile_picture_url AS logo, 'individual' AS kind
	FROM users u
	JOIN individual_profiles i ON i.user_id = u.id
	WHERE u.id IN (%s)`

// CreateWithProfile, kullanıcıyı ve profil satırını tek transaction'da ekler.
// İkinci insert başarısız olursa kullanıcı satırı da geri alınır —
// profilsiz (dizinde görünmeyen) hesap oluşmaz.
func (r *sqliteUserRepo) CreateWithProfile(ctx context.Context, user *models.User, entry *models.DirectoryEntry) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			"INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?) RETURNING created_at",
			user.ID, user.Email, user.PasswordHash,
		).Scan(&user.CreatedAt)

		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
				return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		user.CreatedAt = user.CreatedAt.UTC()

		switch entry.Kind {
		case models.ProfileKindBusiness:
			_, err = tx.ExecContext(ctx,
				"INSERT INTO business_profiles (user_id, company_name, location, logo_url) VALUES (?, ?, ?, ?)",
				user.ID, entry.Name, entry.Location, entry.Logo,
			)
		case models.ProfileKindIndividual:
			_, err = tx.ExecContext(ctx,
				"INSERT INTO individual_profiles (user_id, name, location, profile_picture_url) VALUES (?, ?, ?, ?)",
				user.ID, entry.Name, entry.Location, entry.Logo,
			)
		default:
			return fmt.Errorf("%w: unknown profile kind %q", pkg.ErrBadRequest, entry.Kind)
		}

		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		entry.UserID = user.ID
		entry.Email = user.Email
		return nil
	})
}

// GetByID, ID ile kullanıcıyı döner.
func (r *sqliteUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE id = ?",
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByEmail, email ile kullanıcıyı döner.
func (r *sqliteUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE email = ?",
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetDirectoryEntry, tek bir kullanıcının dizin kaydını döner.
func (r *sqliteUserRepo) GetDirectoryEntry(ctx context.Context, userID string) (*models.DirectoryEntry, error) {
	entries, err := r.GetDirectoryEntries(ctx, []string{userID})
	if err != nil {
		return nil, err
	}

	entry, ok := entries[userID]
	if !ok {
		return nil, fmt.Errorf("%w: no profile for user", pkg.ErrNotFound)
	}
	return &entry, nil
}

// GetDirectoryEntries, birden fazla kullanıcının dizin kaydını tek sorguda döner.
// Profili olmayan id'ler sessizce atlanır — map'te yer almazlar.
func (r *sqliteUserRepo) GetDirectoryEntries(ctx context.Context, userIDs []string) (map[string]models.DirectoryEntry, error) {
	entries := make(map[string]models.DirectoryEntry, len(userIDs))
	if len(userIDs) == 0 {
		return entries, nil
	}

	ph := placeholders(len(userIDs))
	query := fmt.Sprintf(directoryQuery, ph, ph)

	args := make([]any, 0, len(userIDs)*2)
	for _, id := range userIDs {
		args = append(args, id)
	}
	for _, id := range userIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query directory: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.DirectoryEntry
		var logo sql.NullString
		var kind string

		if err := rows.Scan(&entry.UserID, &entry.Email, &entry.Name, &entry.Location, &logo, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan directory entry: %w", err)
		}

		if logo.Valid {
			entry.Logo = &logo.String
		}
		entry.Kind = models.ProfileKind(kind)

		// İlk eşleşme kazanır — business UNION'da önce gelir
		if _, exists := entries[entry.UserID]; !exists {
			entries[entry.UserID] = entry
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating directory entries: %w", err)
	}

	return entries, nil
}
