// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository aynı *sql.DB bağlantısını alır ve interface döner.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/connective/backend/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı değişkenler yerine tek container kullanmak
// fonksiyon imzalarını temiz tutar ve yeni repository eklendiğinde
// sadece struct + initRepositories güncellenir.
type Repositories struct {
	User    repository.UserRepository
	Message repository.MessageRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:    repository.NewSQLiteUserRepo(conn),
		Message: repository.NewSQLiteMessageRepo(conn),
	}
}
