// Package main, connective backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'larla)
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. Service'leri oluştur (repository'ler ile)
//  5. Handler'ları oluştur (service'ler ile)
//  6. HTTP router'ı kur, route'ları bağla
//  7. CORS yapılandır
//  8. Opsiyonel bildirim süpürme scheduler'ını başlat
//  9. HTTP Server'ı başlat
// 10. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/connective/backend/config"
	"github.com/connective/backend/database"
	"github.com/connective/backend/pkg/schedule"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] connective server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	//
	// Migration'lar binary'e gömülüdür — deployment'ta ayrı SQL dosyası
	// taşımak gerekmez.
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to access embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3-5. Repository → Service → Handler ───
	repos := initRepositories(db.Conn)
	svcs, limiters := initServices(repos, cfg)
	h := initHandlers(svcs, limiters)

	// ─── 6. HTTP Router ───
	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, repos.User)

	// ─── 7. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := corsHandler.Handler(mux)

	// ─── 8. Bildirim süpürme scheduler'ı (opsiyonel) ───
	//
	// NOTIFY_SWEEP_INTERVAL > 0 ise süpürme in-process bir task olarak
	// döner. 0 (varsayılan) ise süpürme sadece POST /api/notifications/sweep
	// ile tetiklenir — harici bir cron'a bırakılmıştır.
	var sweepTask *schedule.Task
	if cfg.Notify.SweepInterval > 0 {
		sweepTask = schedule.NewFixedDelay("notify-sweep", cfg.Notify.SweepInterval, func(ctx context.Context) {
			if _, err := svcs.Notify.Sweep(ctx); err != nil {
				log.Printf("[notify] scheduled sweep error: %v", err)
			}
		})
		sweepTask.Start(context.Background())
		log.Printf("[main] notification sweep scheduler enabled (interval=%s)", cfg.Notify.SweepInterval)
	}

	// ─── 9. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 10. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce background işleri durdur — devam eden süpürme biterse biter,
	// yarım kalan adaylar bir sonraki süpürmede tekrar bulunur.
	if sweepTask != nil {
		sweepTask.Stop()
	}
	limiters.Message.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
