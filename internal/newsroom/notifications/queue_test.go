package notifications

import (
	"reflect"
	"testing"
	"time"
)

// fakeClock двигается вручную, чтобы не спать в тестах TTL.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestQueue(ttl time.Duration) (*Queue, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	q := NewQueue(ttl)
	q.now = clock.now
	return q, clock
}

func TestQueueOrder(t *testing.T) {
	q, _ := newTestQueue(DefaultTTL)

	q.Push("Auto-Saved")
	q.Push("Saved")

	if got := q.Active(); !reflect.DeepEqual(got, []string{"Auto-Saved", "Saved"}) {
		t.Errorf("Active = %v", got)
	}
}

func TestQueueExpiry(t *testing.T) {
	q, clock := newTestQueue(5 * time.Second)

	q.Push("Auto-Saved")
	clock.advance(3 * time.Second)
	q.Push("Saved")

	// Первое сообщение ещё живо.
	if got := q.Active(); len(got) != 2 {
		t.Fatalf("Active = %v", got)
	}

	// 5s с момента первого Push прошло, второе сообщение еще активно.
	clock.advance(2 * time.Second)
	if got := q.Active(); !reflect.DeepEqual(got, []string{"Saved"}) {
		t.Errorf("Active = %v", got)
	}

	clock.advance(3 * time.Second)
	if got := q.Active(); len(got) != 0 {
		t.Errorf("Active after full expiry = %v", got)
	}
}

func TestQueueSweep(t *testing.T) {
	q, clock := newTestQueue(time.Second)

	q.Push("Failed to save, retrying")
	clock.advance(2 * time.Second)
	q.Sweep()

	q.mu.Lock()
	n := len(q.entries)
	q.mu.Unlock()
	if n != 0 {
		t.Errorf("entries after sweep = %d", n)
	}
}

func TestQueueDefaultTTL(t *testing.T) {
	q := NewQueue(0)
	if q.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", q.ttl, DefaultTTL)
	}
}
