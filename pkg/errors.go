// Package pkg, projede paylaşılan küçük yardımcıları barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Error'lar sabit değer olarak tanımlanır ve errors.Is ile karşılaştırılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Katmanlar arası sözleşme: service bu sentinel'lerden birini wrap ederek
// döner, handler pkg.Error ile HTTP status'a çevirir.
package pkg

import "errors"

// Domain-level error'lar.
//
// ErrBadRequest: geçersiz input (boş mesaj metni, eksik id) — hiçbir store
// mutasyonundan ÖNCE reddedilir.
// ErrNotFound: dizinde karşılığı olmayan kullanıcı/konuşma — "veri yok"
// anlamındadır, caller boş durum render eder.
// Store hataları sentinel almaz — fmt.Errorf("failed to ...: %w", err) ile
// wrap edilir ve 500 olarak düşer.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
