// Координатор автосохранения и публикации тела новости.
//
// Основные возможности:
//   - Машина состояний {Idle, SaveInFlight, CoolingDown} со счётчиком ошибок.
//   - Периодическое автосохранение полного снимка содержимого.
//   - Гейт допуска: фоновая задача раз в период безусловно возвращает право
//     на следующую автоматическую попытку; сама она сохранение не запускает.
//   - Ручное сохранение и публикация в обход гейта, без автоматических ретраев.
//   - Результаты отказов уходят только в очередь уведомлений, наружу ошибки
//     автосохранения не пробрасываются.
//
// На координатор ставится ровно один cron-диспетчер, он снимается в Close.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/cronmanager"
	"github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/notifications"
	stack_error "github.com/medieteknik-kth/medieteknik.com-sub000/internal/newsroom/stack-error"
)

type State int

const (
	Idle State = iota
	SaveInFlight
	CoolingDown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case SaveInFlight:
		return "save-in-flight"
	case CoolingDown:
		return "cooling-down"
	}
	return "unknown"
}

// Result - исход попытки сохранения, как его видит UI.
type Result string

const (
	ResultSaved            Result = "SAVED"
	ResultAutoSaved        Result = "AUTO_SAVED"
	ResultFailedRetry      Result = "FAILED_RETRY"
	ResultFailedMaxRetries Result = "FAILED_MAX_RETRIES"
	ResultFailed           Result = "FAILED"
)

// ErrPublishFailed возвращается из Publish; UI показывает его текстом в
// диалоге публикации, автоматических повторов нет.
var ErrPublishFailed = errors.New("publish failed")

// Snapshot - полный снимок содержимого на момент запроса. Дифф-сохранение
// не используется: каждый запрос несёт сериализованное тело целиком плюс
// метаданные сущности.
type Snapshot struct {
	Title            string
	LanguageCode     string
	Body             string
	ShortDescription string
	Image            string
}

// Saver - внешний REST-коллаборатор, выполняющий сохранение и публикацию.
type Saver interface {
	Save(ctx context.Context, snap Snapshot) error
	Publish(ctx context.Context, snap Snapshot) (publishedURL string, err error)
}

type Options struct {
	// Период автосохранения и повторной выдачи допуска.
	Period time.Duration
	// Потолок счётчика ошибок: после его превышения отказы репортятся как
	// FAILED_MAX_RETRIES. Попытки при этом продолжаются - различие только
	// в сообщении.
	RetryLimit int
	// Пауза CoolingDown -> Idle после неудачной автоматической попытки.
	Cooldown time.Duration
}

func (o Options) withDefaults() Options {
	if o.Period <= 0 {
		o.Period = 30 * time.Second
	}
	if o.RetryLimit <= 0 {
		o.RetryLimit = 3
	}
	if o.Cooldown <= 0 {
		o.Cooldown = o.Period
	}
	return o
}

type Coordinator struct {
	saver    Saver
	snapshot func() Snapshot
	queue    *notifications.Queue
	opts     Options
	cm       *cronmanager.CronManager

	mu       sync.Mutex
	state    State
	errCount int
	eligible bool
	cooldown *time.Timer
	closed   bool
}

// New создает координатор. snapshot вызывается на каждую попытку и обязан
// возвращать актуальное состояние содержимого: очереди отложенных снимков
// нет, следующая попытка просто шлёт последнее.
func New(saver Saver, snapshot func() Snapshot, queue *notifications.Queue, opts Options) *Coordinator {
	return &Coordinator{
		saver:    saver,
		snapshot: snapshot,
		queue:    queue,
		opts:     opts.withDefaults(),
		eligible: true,
	}
}

// Start устанавливает периодические задачи: тик автосохранения и выдачу
// допуска. Оба интервала равны периоду координатора.
func (c *Coordinator) Start() error {
	schedule := fmt.Sprintf("@every %s", c.opts.Period)
	c.cm = cronmanager.NewCronManager(cronmanager.JobRegistry{
		"autosave-tick": {
			Schedule: schedule,
			Func:     func() { c.RequestSave(context.Background()) },
		},
		"autosave-grant": {
			Schedule: schedule,
			Func:     c.grant,
		},
	})
	if err := c.cm.LoadJobs(); err != nil {
		return err
	}
	c.cm.Start()
	return nil
}

// Close останавливает диспетчер и таймер паузы. После Close автоматические
// попытки не выполняются.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	if c.cooldown != nil {
		c.cooldown.Stop()
	}
	cm := c.cm
	c.mu.Unlock()

	if cm != nil {
		cm.Stop()
	}
}

// RequestSave - автоматическая попытка сохранения: периодический тик или
// запрос после правки. Выполняется только из Idle при открытом гейте;
// attempted=false, когда попытка подавлена. Редактирование во время
// SaveInFlight не блокируется.
func (c *Coordinator) RequestSave(ctx context.Context) (result Result, attempted bool) {
	c.mu.Lock()
	if c.closed || !c.eligible || c.state != Idle {
		c.mu.Unlock()
		return "", false
	}
	c.state = SaveInFlight
	c.eligible = false
	c.mu.Unlock()

	err := c.saver.Save(ctx, c.snapshot())

	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil {
		// Запоздавший успех принимается без проверки актуальности снимка:
		// возможная потеря обновления при быстрых правках - известный риск.
		c.state = Idle
		c.errCount = 0
		c.notify("Auto-Saved")
		return ResultAutoSaved, true
	}

	stack_error.LogError(err)
	c.errCount++
	c.state = CoolingDown
	c.armCooldown()
	c.notify("Failed to save, retrying")

	if c.errCount > c.opts.RetryLimit {
		return ResultFailedMaxRetries, true
	}
	return ResultFailedRetry, true
}

// SaveNow - ручное сохранение. Гейт и состояние игнорируются: запрос
// уходит всегда, в том числе во время паузы. Отказ терминален, ретрай
// не планируется.
func (c *Coordinator) SaveNow(ctx context.Context) Result {
	err := c.saver.Save(ctx, c.snapshot())

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		stack_error.LogError(err)
		c.notify("Failed to save")
		return ResultFailed
	}

	c.state = Idle
	c.errCount = 0
	c.notify("Saved")
	return ResultSaved
}

// Publish - публикация: отдельный endpoint, в обход гейта, без ретраев.
// Возвращает адрес опубликованной статьи для редиректа.
func (c *Coordinator) Publish(ctx context.Context) (string, error) {
	publishedURL, err := c.saver.Publish(ctx, c.snapshot())
	if err != nil {
		stack_error.LogError(err)
		c.mu.Lock()
		c.notify("Failed to publish")
		c.mu.Unlock()
		return "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	c.mu.Lock()
	c.errCount = 0
	c.state = Idle
	c.notify("Published")
	c.mu.Unlock()
	return publishedURL, nil
}

// State - текущее состояние машины.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ErrorCount - текущее значение счётчика ошибок автосохранения.
func (c *Coordinator) ErrorCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errCount
}

// grant безусловно возвращает право на следующую автоматическую попытку.
// Это выдача разрешения, а не триггер: сохранение grant не запускает.
func (c *Coordinator) grant() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eligible = true
}

// armCooldown взводит переход CoolingDown -> Idle. Вызывается под mu.
func (c *Coordinator) armCooldown() {
	if c.cooldown != nil {
		c.cooldown.Stop()
	}
	c.cooldown = time.AfterFunc(c.opts.Cooldown, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state == CoolingDown {
			c.state = Idle
		}
	})
}

// notify кладет сообщение в очередь уведомлений. Вызывается под mu.
func (c *Coordinator) notify(message string) {
	if c.queue != nil {
		c.queue.Push(message)
	}
}
