package ratelimit

import (
	"testing"
	"time"
)

func TestAllowUpToLimitThenCooldown(t *testing.T) {
	rl := NewMessageRateLimiter(3, time.Minute, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("alice") {
			t.Fatalf("message %d should be allowed", i+1)
		}
	}

	if rl.Allow("alice") {
		t.Fatal("4th message in window should be rejected")
	}

	// Cooldown başladı — retry-after pozitif olmalı
	if retry := rl.RetryAfterSeconds("alice"); retry <= 0 {
		t.Fatalf("RetryAfterSeconds = %d, want > 0", retry)
	}

	// Cooldown sırasında her deneme reddedilir
	if rl.Allow("alice") {
		t.Fatal("message during cooldown should be rejected")
	}
}

func TestUsersAreIsolated(t *testing.T) {
	rl := NewMessageRateLimiter(1, time.Minute, time.Minute)
	defer rl.Stop()

	if !rl.Allow("alice") {
		t.Fatal("alice's first message should be allowed")
	}
	if rl.Allow("alice") {
		t.Fatal("alice's second message should be rejected")
	}

	// bob, alice'in limitinden etkilenmez
	if !rl.Allow("bob") {
		t.Fatal("bob's first message should be allowed")
	}
}

func TestWindowResetAfterCooldown(t *testing.T) {
	rl := NewMessageRateLimiter(1, 10*time.Millisecond, 20*time.Millisecond)
	defer rl.Stop()

	if !rl.Allow("alice") {
		t.Fatal("first message should be allowed")
	}
	if rl.Allow("alice") {
		t.Fatal("second message should trigger cooldown")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.Allow("alice") {
		t.Fatal("message after cooldown + window expiry should be allowed")
	}
}

func TestRetryAfterZeroForUnknownUser(t *testing.T) {
	rl := NewMessageRateLimiter(5, time.Minute, time.Minute)
	defer rl.Stop()

	if retry := rl.RetryAfterSeconds("nobody"); retry != 0 {
		t.Fatalf("RetryAfterSeconds for unknown user = %d, want 0", retry)
	}
}
