// Package ratelimit — Mesaj spam koruması için kullanıcı bazlı rate limiting.
//
// Tasarım:
// - window süresi içinde maxMessages mesaja izin verilir.
// - Limit aşıldığında cooldown başlar — cooldown süresince tüm mesajlar
//   reddedilir.
// - Cooldown bitince pencere sıfırlanır, kullanıcı tekrar mesaj atabilir.
package ratelimit

import (
	"sync"
	"time"
)

// bucket, bir kullanıcı için mesaj sayacı ve cooldown bilgisi tutar.
type bucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time // zero value = cooldown yok
}

// MessageRateLimiter, kullanıcı bazlı mesaj spam koruması.
//
// Kullanım:
//
//	limiter := ratelimit.NewMessageRateLimiter(5, 5*time.Second, 15*time.Second)
//	// Message handler'da:
//	if !limiter.Allow(userID) { return 429 }
type MessageRateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	maxMessages int
	window      time.Duration
	cooldown    time.Duration
	stopCleanup chan struct{}
}

// NewMessageRateLimiter, yeni limiter oluşturur ve arka plan temizleme
// goroutine'ini başlatır.
func NewMessageRateLimiter(maxMessages int, window, cooldown time.Duration) *MessageRateLimiter {
	rl := &MessageRateLimiter{
		buckets:     make(map[string]*bucket),
		maxMessages: maxMessages,
		window:      window,
		cooldown:    cooldown,
		stopCleanup: make(chan struct{}),
	}

	// Bucket'lar kısa ömürlüdür ama çok kullanıcıda bellek birikmesin diye
	// periyodik temizlik gerekir.
	go rl.cleanupLoop()

	return rl
}

// Allow, kullanıcının mesaj göndermesine izin verilip verilmediğini döner.
// İzin verildiyse sayaç artırılır.
func (rl *MessageRateLimiter) Allow(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[userID]
	if !ok {
		rl.buckets[userID] = &bucket{count: 1, windowStart: now}
		return true
	}

	// Cooldown modunda mı?
	if now.Before(b.cooldownUntil) {
		return false
	}

	// Pencere süresi dolduysa sıfırla
	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		b.cooldownUntil = time.Time{}
		return true
	}

	if b.count >= rl.maxMessages {
		b.cooldownUntil = now.Add(rl.cooldown)
		return false
	}

	b.count++
	return true
}

// RetryAfterSeconds, kullanıcının kaç saniye sonra tekrar deneyebileceğini döner.
func (rl *MessageRateLimiter) RetryAfterSeconds(userID string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[userID]
	if !ok {
		return 0
	}

	remaining := time.Until(b.cooldownUntil)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// Stop, temizleme goroutine'ini durdurur.
func (rl *MessageRateLimiter) Stop() {
	close(rl.stopCleanup)
}

// cleanupLoop, süresi dolmuş bucket'ları periyodik olarak siler.
func (rl *MessageRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for userID, b := range rl.buckets {
				if now.Sub(b.windowStart) > rl.window && now.After(b.cooldownUntil) {
					delete(rl.buckets, userID)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCleanup:
			return
		}
	}
}
