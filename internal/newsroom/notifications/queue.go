// Очередь транзиентных уведомлений редактора: сообщения о результате
// сохранения с ограниченным временем жизни. UI читает только активные
// записи; просроченные отбрасываются.
package notifications

import (
	"sync"
	"time"
)

// DefaultTTL - время жизни уведомления.
const DefaultTTL = 5 * time.Second

type entry struct {
	message string
	expires time.Time
}

type Queue struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries []entry
	now     func() time.Time
}

func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{ttl: ttl, now: time.Now}
}

// Push добавляет сообщение в очередь.
func (q *Queue) Push(message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.prune(q.now())
	q.entries = append(q.entries, entry{
		message: message,
		expires: q.now().Add(q.ttl),
	})
}

// Active возвращает не истекшие сообщения в порядке добавления.
func (q *Queue) Active() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	q.prune(now)

	res := make([]string, 0, len(q.entries))
	for _, e := range q.entries {
		res = append(res, e.message)
	}
	return res
}

// Sweep принудительно выбрасывает просроченные записи.
func (q *Queue) Sweep() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.prune(q.now())
}

func (q *Queue) prune(now time.Time) {
	alive := q.entries[:0]
	for _, e := range q.entries {
		if e.expires.After(now) {
			alive = append(alive, e)
		}
	}
	q.entries = alive
}
