package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nexttalent/nexttalent/internal/models"
	"github.com/nexttalent/nexttalent/pkg/metrics"
)

// Actor is the session context resolved once at login and passed explicitly
// into every service call. It replaces the original client-side role cache.
type Actor struct {
	ID   string
	Role models.Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// advise logs and drops a failed advisory notification. Delivery is never
// required for the correctness of the triggering state change.
func advise(log *zap.Logger, action string, err error) {
	if err == nil {
		return
	}
	metrics.NotificationFailures.Inc()
	log.Warn("notification dropped", zap.String("action", action), zap.Error(err))
}
