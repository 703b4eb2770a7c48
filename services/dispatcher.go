package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
)

const effectTimeout = 5 * time.Second

type NotificationWriter interface {
	Create(ctx context.Context, n *models.Notification) error
}

type AuditWriter interface {
	Log(ctx context.Context, userID uint, action, resource string, metadata map[string]interface{}) error
}

// Pusher delivers an event to a user's live connections.
type Pusher interface {
	SendToUser(userID uint, event string, data interface{}) int
}

// Effect is a side effect of a committed mutation.
type Effect interface {
	apply(ctx context.Context, d *Dispatcher) error
	describe() logrus.Fields
}

// NotifyEffect stores a notification for UserID and pushes it to the
// recipient's open connections.
type NotifyEffect struct {
	UserID    uint
	Type      models.NotificationType
	Title     string
	Body      string
	RelatedID *uint
}

func (e NotifyEffect) apply(ctx context.Context, d *Dispatcher) error {
	n := &models.Notification{
		UserID:    e.UserID,
		Type:      e.Type,
		Title:     e.Title,
		Body:      e.Body,
		RelatedID: e.RelatedID,
	}
	if err := d.notifications.Create(ctx, n); err != nil {
		return err
	}
	if d.pusher != nil {
		d.pusher.SendToUser(e.UserID, "notification", n)
	}
	return nil
}

func (e NotifyEffect) describe() logrus.Fields {
	return logrus.Fields{"effect": "notify", "user_id": e.UserID, "type": e.Type}
}

// AuditEffect appends an activity log entry.
type AuditEffect struct {
	UserID   uint
	Action   string
	Resource string
	Metadata map[string]interface{}
}

func (e AuditEffect) apply(ctx context.Context, d *Dispatcher) error {
	return d.audit.Log(ctx, e.UserID, e.Action, e.Resource, e.Metadata)
}

func (e AuditEffect) describe() logrus.Fields {
	return logrus.Fields{"effect": "audit", "user_id": e.UserID, "action": e.Action, "resource": e.Resource}
}

// PushEffect sends an event to the user's open connections without storing
// anything.
type PushEffect struct {
	UserID uint
	Event  string
	Data   interface{}
}

func (e PushEffect) apply(_ context.Context, d *Dispatcher) error {
	if d.pusher != nil {
		d.pusher.SendToUser(e.UserID, e.Event, e.Data)
	}
	return nil
}

func (e PushEffect) describe() logrus.Fields {
	return logrus.Fields{"effect": "push", "user_id": e.UserID, "event": e.Event}
}

type queuedEffect struct {
	ctx    context.Context
	effect Effect
}

// Dispatcher runs side effects after the primary write has committed. It is
// best effort: failures are logged and never reach the caller, a full queue
// drops the effect, and effects queued when the process dies are lost.
// Until Start is called effects run inline on the caller's goroutine.
type Dispatcher struct {
	notifications NotificationWriter
	audit         AuditWriter
	pusher        Pusher

	mu      sync.RWMutex
	queue   chan queuedEffect
	started bool
	stopped bool
	wg      sync.WaitGroup
}

func NewDispatcher(notifications NotificationWriter, audit AuditWriter, pusher Pusher, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{
		notifications: notifications,
		audit:         audit,
		pusher:        pusher,
		queue:         make(chan queuedEffect, queueSize),
	}
}

// Start launches the worker goroutines. Calling it again is a no-op.
func (d *Dispatcher) Start(workers int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	if workers <= 0 {
		workers = 1
	}
	d.started = true
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	utils.InfoLogger.Printf("Side effect dispatcher started with %d workers", workers)
}

// Stop drains the queue and waits for the workers. Effects dispatched after
// Stop run inline.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.stopped = true
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	utils.InfoLogger.Println("Side effect dispatcher stopped")
}

// Dispatch hands effects over without blocking the caller. The caller's
// cancellation does not cancel the effects.
func (d *Dispatcher) Dispatch(ctx context.Context, effects ...Effect) {
	ctx = context.WithoutCancel(ctx)

	d.mu.RLock()
	async := d.started && !d.stopped
	if async {
		for _, e := range effects {
			select {
			case d.queue <- queuedEffect{ctx: ctx, effect: e}:
			default:
				utils.ErrorLogger.WithFields(e.describe()).Error("side effect queue full, effect dropped")
			}
		}
		d.mu.RUnlock()
		return
	}
	d.mu.RUnlock()

	for _, e := range effects {
		d.run(ctx, e)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for item := range d.queue {
		d.run(item.ctx, item.effect)
	}
}

func (d *Dispatcher) run(ctx context.Context, e Effect) {
	ctx, cancel := context.WithTimeout(ctx, effectTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			utils.ErrorLogger.WithFields(e.describe()).Errorf("side effect panicked: %v", r)
		}
	}()

	if err := e.apply(ctx, d); err != nil {
		utils.ErrorLogger.WithFields(e.describe()).Errorf("side effect failed: %v", err)
	}
}
