// Package schedule, fixed-delay tekrarlayan görevler için küçük bir
// soyutlama sağlar.
//
// Fixed-delay, fixed-rate'ten farklıdır: bir sonraki çalışma, önceki çalışma
// BİTTİKTEN sonra delay kadar beklenerek planlanır. Böylece yavaş bir
// iterasyon üst üste binen çalışmalara yol açmaz — aynı görevin iki kopyası
// asla eşzamanlı koşmaz.
//
// Ad hoc time.Ticker + stop channel kalıbının yerini alır: her Task kendi
// iptal mekanizmasını taşır, component lifecycle'ları arasında sızan timer
// kalmaz.
package schedule

import (
	"context"
	"log"
	"sync"
	"time"
)

// Task, fixed-delay tekrarlayan bir görevdir.
type Task struct {
	name  string
	delay time.Duration
	fn    func(ctx context.Context)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewFixedDelay, yeni bir fixed-delay görev oluşturur. Görev Start
// çağrılana kadar çalışmaz.
//
// name: log satırlarında görünen görev adı.
// delay: iki çalışma arasındaki bekleme süresi.
// fn: her iterasyonda çağrılan fonksiyon — iptal için ctx'i gözetmeli.
func NewFixedDelay(name string, delay time.Duration, fn func(ctx context.Context)) *Task {
	return &Task{
		name:  name,
		delay: delay,
		fn:    fn,
		done:  make(chan struct{}),
	}
}

// Start, görev goroutine'ini başlatır. İlk çalışma delay beklemeden hemen
// yapılır. İkinci kez çağrılması no-op'tur.
//
// parent iptal edildiğinde veya Stop çağrıldığında görev durur.
func (t *Task) Start(parent context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return
	}
	t.started = true

	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel

	log.Printf("[schedule] %s started (delay=%s)", t.name, t.delay)

	go func() {
		defer close(t.done)

		for {
			t.fn(ctx)

			// Fixed-delay re-arm: timer, fn bittikten SONRA kurulur.
			timer := time.NewTimer(t.delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				log.Printf("[schedule] %s stopped", t.name)
				return
			}
		}
	}()
}

// Stop, görevi durdurur ve çalışan iterasyonun bitmesini bekler.
// Start edilmemiş veya zaten durmuş görevde no-op'tur.
func (t *Task) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	cancel := t.cancel
	t.mu.Unlock()

	cancel()
	<-t.done
}
