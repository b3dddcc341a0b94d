package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/models"
	apperrors "github.com/nexttalent/nexttalent/pkg/errors"
	"github.com/nexttalent/nexttalent/pkg/metrics"
)

// Notifier is the advisory delivery seam the workflow services depend on.
// Callers treat failures as non-fatal: the primary write always wins.
type Notifier interface {
	NotifyUser(ctx context.Context, recipientID string, role models.Role, title, message string) error
	NotifyRole(ctx context.Context, role models.Role, title, message string) error
	NotifyAllUsers(ctx context.Context, title, message string) error
}

// NotificationDTO represents the API-friendly notification payload.
type NotificationDTO struct {
	ID          string      `json:"id"`
	RecipientID string      `json:"recipient_id"`
	Role        models.Role `json:"role"`
	Title       string      `json:"title"`
	Message     string      `json:"message"`
	IsRead      bool        `json:"is_read"`
	CreatedAt   time.Time   `json:"created_at"`
	ReadAt      *time.Time  `json:"read_at,omitempty"`
}

// ListNotificationsInput defines filters for querying an inbox.
type ListNotificationsInput struct {
	Actor  Actor
	Limit  int
	Offset int
}

// NotificationService creates and queries advisory notifications. Admin
// notifications form a single shared inbox keyed by role; user and employer
// inboxes are scoped to the individual recipient.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(db *gorm.DB) (*NotificationService, error) {
	if db == nil {
		return nil, errors.New("notification service: db is required")
	}
	return &NotificationService{db: db}, nil
}

// NotifyUser inserts one notification record for a single recipient.
func (s *NotificationService) NotifyUser(ctx context.Context, recipientID string, role models.Role, title, message string) error {
	ctx = ensureContext(ctx)
	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" {
		return errors.New("notification service: recipient id is required")
	}
	if !role.Valid() {
		return fmt.Errorf("notification service: unknown role %q", role)
	}

	record := models.Notification{
		RecipientID: recipientID,
		Role:        role,
		Title:       strings.TrimSpace(title),
		Message:     strings.TrimSpace(message),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("notification service: create notification: %w", err)
	}

	metrics.NotificationsCreated.WithLabelValues(role.String()).Inc()
	return nil
}

// NotifyRole fans one notification out to every current member of the role.
// Members who join later receive nothing. If membership resolution fails the
// whole broadcast is abandoned.
func (s *NotificationService) NotifyRole(ctx context.Context, role models.Role, title, message string) error {
	ctx = ensureContext(ctx)

	memberIDs, err := s.roleMembers(ctx, role)
	if err != nil {
		return fmt.Errorf("notification service: resolve %s members: %w", role, err)
	}
	if len(memberIDs) == 0 {
		return nil
	}

	records := make([]models.Notification, 0, len(memberIDs))
	for _, id := range memberIDs {
		records = append(records, models.Notification{
			RecipientID: id,
			Role:        role,
			Title:       strings.TrimSpace(title),
			Message:     strings.TrimSpace(message),
		})
	}

	if err := s.db.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("notification service: broadcast to %s: %w", role, err)
	}

	metrics.NotificationsCreated.WithLabelValues(role.String()).Add(float64(len(records)))
	return nil
}

// NotifyAllUsers inserts one record per account regardless of role, each
// tagged with that account's own role.
func (s *NotificationService) NotifyAllUsers(ctx context.Context, title, message string) error {
	ctx = ensureContext(ctx)

	var accounts []models.Account
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&accounts).Error; err != nil {
		return fmt.Errorf("notification service: resolve accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil
	}

	records := make([]models.Notification, 0, len(accounts))
	for _, account := range accounts {
		records = append(records, models.Notification{
			RecipientID: account.ID,
			Role:        account.Role,
			Title:       strings.TrimSpace(title),
			Message:     strings.TrimSpace(message),
		})
		metrics.NotificationsCreated.WithLabelValues(account.Role.String()).Inc()
	}

	if err := s.db.WithContext(ctx).Create(&records).Error; err != nil {
		return fmt.Errorf("notification service: broadcast to all: %w", err)
	}
	return nil
}

// CountUnread returns the unread badge count for the actor. Admins share one
// inbox: every unread record tagged role=admin counts, regardless of the
// recipient on the row.
func (s *NotificationService) CountUnread(ctx context.Context, recipientID string, role models.Role) (int64, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("is_read = ?", false)

	if role == models.RoleAdmin {
		query = query.Where("role = ?", models.RoleAdmin)
	} else {
		query = query.Where("recipient_id = ? AND role = ?", recipientID, role)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("notification service: count unread: %w", err)
	}
	return count, nil
}

// ListForRecipient returns the actor's inbox ordered by recency.
func (s *NotificationService) ListForRecipient(ctx context.Context, input ListNotificationsInput) ([]NotificationDTO, error) {
	ctx = ensureContext(ctx)

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	query := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset)
	query = scopeToInbox(query, input.Actor)

	var rows []models.Notification
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("notification service: list notifications: %w", err)
	}

	items := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapNotification(row))
	}
	return items, nil
}

// MarkRead sets the read flag on a notification in the actor's inbox.
func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, notificationID string) (*NotificationDTO, error) {
	ctx = ensureContext(ctx)

	var row models.Notification
	if err := scopeToInbox(s.db.WithContext(ctx).Where("id = ?", notificationID), actor).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("notification service: load notification: %w", err)
	}

	if !row.IsRead {
		now := time.Now().UTC()
		if err := s.db.WithContext(ctx).Model(&row).
			Updates(map[string]any{"is_read": true, "read_at": now}).Error; err != nil {
			return nil, fmt.Errorf("notification service: mark read: %w", err)
		}
		row.IsRead = true
		row.ReadAt = &now
	}

	dto := mapNotification(row)
	return &dto, nil
}

// MarkAllRead marks every unread notification in the actor's inbox as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor Actor) error {
	ctx = ensureContext(ctx)

	now := time.Now().UTC()
	query := scopeToInbox(s.db.WithContext(ctx).Model(&models.Notification{}), actor).
		Where("is_read = ?", false)
	if err := query.Updates(map[string]any{"is_read": true, "read_at": now}).Error; err != nil {
		return fmt.Errorf("notification service: mark all read: %w", err)
	}
	return nil
}

// Delete removes a notification from the actor's inbox.
func (s *NotificationService) Delete(ctx context.Context, actor Actor, notificationID string) error {
	ctx = ensureContext(ctx)

	result := scopeToInbox(s.db.WithContext(ctx).Where("id = ?", notificationID), actor).
		Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("notification service: delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *NotificationService) roleMembers(ctx context.Context, role models.Role) ([]string, error) {
	switch role {
	case models.RoleUser:
		var ids []string
		err := s.db.WithContext(ctx).
			Model(&models.UserProfile{}).
			Pluck("account_id", &ids).Error
		return ids, err
	case models.RoleEmployer:
		var ids []string
		err := s.db.WithContext(ctx).
			Model(&models.EmployerProfile{}).
			Pluck("account_id", &ids).Error
		return ids, err
	case models.RoleAdmin:
		var ids []string
		err := s.db.WithContext(ctx).
			Model(&models.Account{}).
			Where("role = ?", models.RoleAdmin).
			Pluck("id", &ids).Error
		return ids, err
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

func scopeToInbox(query *gorm.DB, actor Actor) *gorm.DB {
	if actor.Role == models.RoleAdmin {
		return query.Where("role = ?", models.RoleAdmin)
	}
	return query.Where("recipient_id = ? AND role = ?", actor.ID, actor.Role)
}

func mapNotification(row models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          row.ID,
		RecipientID: row.RecipientID,
		Role:        row.Role,
		Title:       row.Title,
		Message:     row.Message,
		IsRead:      row.IsRead,
		CreatedAt:   row.CreatedAt,
		ReadAt:      row.ReadAt,
	}
}
