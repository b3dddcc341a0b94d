package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nexttalent/nexttalent/internal/models"
	"github.com/nexttalent/nexttalent/pkg/logger"
	"github.com/nexttalent/nexttalent/pkg/metrics"
)

// DefaultPollInterval defines the fallback badge refresh cadence.
const DefaultPollInterval = 15 * time.Second

// Counter resolves the unread badge count for an inbox.
type Counter interface {
	CountUnread(ctx context.Context, recipientID string, role models.Role) (int64, error)
}

// Poller periodically recomputes unread counts for every subscribed inbox
// and pushes them through the hub. Refresh forces an immediate pass, e.g.
// right after a write that changed an inbox.
type Poller struct {
	hub      *Hub
	counter  Counter
	interval time.Duration
	log      *zap.Logger

	cron   *cron.Cron
	cancel context.CancelFunc
}

// NewPoller constructs a Poller.
func NewPoller(hub *Hub, counter Counter, interval time.Duration) (*Poller, error) {
	if hub == nil {
		return nil, errors.New("poller: hub is required")
	}
	if counter == nil {
		return nil, errors.New("poller: counter is required")
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		hub:      hub,
		counter:  counter,
		interval: interval,
		log:      logger.WithModule("notifications.poller"),
	}, nil
}

// Start schedules the recurring poll. It returns once the schedule is
// registered; polls run on the cron goroutine until Stop or ctx cancellation.
func (p *Poller) Start(ctx context.Context) error {
	if p.cron != nil {
		return errors.New("poller: already started")
	}

	pollCtx, cancel := context.WithCancel(ensureContext(ctx))
	p.cancel = cancel

	p.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	spec := fmt.Sprintf("@every %s", p.interval)
	if _, err := p.cron.AddFunc(spec, func() { p.poll(pollCtx) }); err != nil {
		cancel()
		p.cron = nil
		return fmt.Errorf("poller: schedule %q: %w", spec, err)
	}
	p.cron.Start()

	go func() {
		<-pollCtx.Done()
		p.cron.Stop()
	}()

	p.log.Info("poller started", zap.Duration("interval", p.interval))
	return nil
}

// Refresh runs one poll pass immediately.
func (p *Poller) Refresh(ctx context.Context) {
	p.poll(ensureContext(ctx))
}

// Stop cancels the schedule. Safe to call more than once.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Poller) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	metrics.UnreadPolls.Inc()

	for _, key := range p.hub.SubscribedKeys() {
		recipientID, role, ok := parseInboxKey(key)
		if !ok {
			continue
		}

		count, err := p.counter.CountUnread(ctx, recipientID, role)
		if err != nil {
			p.log.Warn("unread count failed", zap.String("inbox", key), zap.Error(err))
			continue
		}
		p.hub.Broadcast(key, count)
	}
}

func parseInboxKey(key string) (recipientID string, role models.Role, ok bool) {
	switch {
	case key == "role:"+string(models.RoleAdmin):
		return "", models.RoleAdmin, true
	case strings.HasPrefix(key, "user:"):
		parts := strings.SplitN(strings.TrimPrefix(key, "user:"), ":", 2)
		if len(parts) != 2 {
			return "", "", false
		}
		role = models.Role(parts[1])
		if !role.Valid() {
			return "", "", false
		}
		return parts[0], role, true
	}
	return "", "", false
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
