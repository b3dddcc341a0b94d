package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/models"
	apperrors "github.com/nexttalent/nexttalent/pkg/errors"
	"github.com/nexttalent/nexttalent/pkg/logger"
)

// NewsPostDTO represents the API-friendly news post payload.
type NewsPostDTO struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Body      string              `json:"body"`
	Audience  models.NewsAudience `json:"audience"`
	CreatedAt time.Time           `json:"created_at"`
}

// PublishNewsInput carries a new announcement and its target audience.
type PublishNewsInput struct {
	Title    string              `json:"title" validate:"required,max=255"`
	Body     string              `json:"body" validate:"required"`
	Audience models.NewsAudience `json:"audience" validate:"required"`
}

// FeedService manages admin announcements. Publishing stores the post and
// fans a notification out to the selected audience; the fan-out is advisory
// and never undoes the stored post.
type FeedService struct {
	db       *gorm.DB
	notifier Notifier
	log      *zap.Logger
}

// NewFeedService constructs a FeedService.
func NewFeedService(db *gorm.DB, notifier Notifier) (*FeedService, error) {
	if db == nil {
		return nil, errors.New("feed service: db is required")
	}
	if notifier == nil {
		return nil, errors.New("feed service: notifier is required")
	}
	return &FeedService{db: db, notifier: notifier, log: logger.WithModule("feed")}, nil
}

// Publish stores an announcement and notifies its audience. Admin only.
func (s *FeedService) Publish(ctx context.Context, actor Actor, input PublishNewsInput) (*NewsPostDTO, error) {
	ctx = ensureContext(ctx)
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if !input.Audience.Valid() {
		return nil, apperrors.NewBadRequest("audience must be user, employer, or all")
	}

	post := models.NewsPost{
		Title:    strings.TrimSpace(input.Title),
		Body:     strings.TrimSpace(input.Body),
		Audience: input.Audience,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("feed service: create post: %w", err)
	}

	switch post.Audience {
	case models.AudienceAll:
		advise(s.log, "announcement broadcast", s.notifier.NotifyAllUsers(ctx, post.Title, post.Body))
	case models.AudienceUsers:
		advise(s.log, "announcement broadcast", s.notifier.NotifyRole(ctx, models.RoleUser, post.Title, post.Body))
	case models.AudienceEmployers:
		advise(s.log, "announcement broadcast", s.notifier.NotifyRole(ctx, models.RoleEmployer, post.Title, post.Body))
	}

	dto := mapNewsPost(post)
	return &dto, nil
}

// List returns announcements visible to the actor's role, newest first.
func (s *FeedService) List(ctx context.Context, actor Actor) ([]NewsPostDTO, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Order("created_at DESC")
	if !actor.IsAdmin() {
		audience := models.AudienceUsers
		if actor.Role == models.RoleEmployer {
			audience = models.AudienceEmployers
		}
		query = query.Where("audience IN ?", []models.NewsAudience{audience, models.AudienceAll})
	}

	var rows []models.NewsPost
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("feed service: list posts: %w", err)
	}

	items := make([]NewsPostDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapNewsPost(row))
	}
	return items, nil
}

// Delete removes an announcement. Admin only.
func (s *FeedService) Delete(ctx context.Context, actor Actor, postID string) error {
	ctx = ensureContext(ctx)
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}

	result := s.db.WithContext(ctx).Where("id = ?", postID).Delete(&models.NewsPost{})
	if result.Error != nil {
		return fmt.Errorf("feed service: delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func mapNewsPost(row models.NewsPost) NewsPostDTO {
	return NewsPostDTO{
		ID:        row.ID,
		Title:     row.Title,
		Body:      row.Body,
		Audience:  row.Audience,
		CreatedAt: row.CreatedAt,
	}
}
