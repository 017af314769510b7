package repository

import (
	"context"

	"github.com/connective/backend/models"
)

// UserRepository, kullanıcı hesapları ve dizin görünümü için veri erişimi.
//
// Dizin (DirectoryEntry) iki ayrık profil tablosunun UNION'ıdır — mesajlaşma
// çekirdeği bu görünümü salt-okunur tüketir; profil CRUD'u bu repo'nun
// kapsamı dışındadır (kayıt sırasındaki seed hariç).
type UserRepository interface {
	// CreateWithProfile, kullanıcıyı ve profil satırını tek transaction'da ekler.
	CreateWithProfile(ctx context.Context, user *models.User, entry *models.DirectoryEntry) error

	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetDirectoryEntry, kullanıcının dizin kaydını döner.
	// Profili olmayan kullanıcı için pkg.ErrNotFound.
	GetDirectoryEntry(ctx context.Context, userID string) (*models.DirectoryEntry, error)

	// GetDirectoryEntries, birden fazla kullanıcının dizin kaydını tek sorguda
	// döner (N+1 yerine batch). Profili olmayan id'ler map'te yer almaz.
	GetDirectoryEntries(ctx context.Context, userIDs []string) (map[string]models.DirectoryEntry, error)
}
