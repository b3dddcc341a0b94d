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
)

// ReviewDTO represents the API-friendly review payload.
type ReviewDTO struct {
	ID         string      `json:"id"`
	AuthorID   string      `json:"author_id"`
	AuthorName string      `json:"author_name"`
	Role       models.Role `json:"role"`
	Rating     int         `json:"rating"`
	Comment    string      `json:"comment"`
	Approved   bool        `json:"approved"`
	CreatedAt  time.Time   `json:"created_at"`
}

// SubmitReviewInput carries a new platform review.
type SubmitReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// ReviewService manages platform reviews. Submissions start unapproved and
// only surface publicly after an admin approves them.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService constructs a ReviewService.
func NewReviewService(db *gorm.DB) (*ReviewService, error) {
	if db == nil {
		return nil, errors.New("review service: db is required")
	}
	return &ReviewService{db: db}, nil
}

// Submit stores a new review authored by the actor.
func (s *ReviewService) Submit(ctx context.Context, actor Actor, input SubmitReviewInput) (*ReviewDTO, error) {
	ctx = ensureContext(ctx)
	if actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	review := models.Review{
		AuthorID:   actor.ID,
		AuthorName: s.authorName(ctx, actor),
		Role:       actor.Role,
		Rating:     input.Rating,
		Comment:    strings.TrimSpace(input.Comment),
		Approved:   false,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, fmt.Errorf("review service: create review: %w", err)
	}

	dto := mapReview(review)
	return &dto, nil
}

// ListApproved returns the publicly visible reviews, newest first.
func (s *ReviewService) ListApproved(ctx context.Context) ([]ReviewDTO, error) {
	ctx = ensureContext(ctx)

	var rows []models.Review
	if err := s.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("review service: list approved: %w", err)
	}
	return mapReviews(rows), nil
}

// ListAll returns every review for moderation. Admin only.
func (s *ReviewService) ListAll(ctx context.Context, actor Actor) ([]ReviewDTO, error) {
	ctx = ensureContext(ctx)
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	var rows []models.Review
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("review service: list all: %w", err)
	}
	return mapReviews(rows), nil
}

// Approve marks a review as publicly visible. Admin only.
func (s *ReviewService) Approve(ctx context.Context, actor Actor, reviewID string) (*ReviewDTO, error) {
	ctx = ensureContext(ctx)
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	var review models.Review
	if err := s.db.WithContext(ctx).Where("id = ?", reviewID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("review service: load review: %w", err)
	}

	if !review.Approved {
		if err := s.db.WithContext(ctx).Model(&review).Update("approved", true).Error; err != nil {
			return nil, fmt.Errorf("review service: approve review: %w", err)
		}
		review.Approved = true
	}

	dto := mapReview(review)
	return &dto, nil
}

// Delete removes a review. Admins can delete any review, authors their own.
func (s *ReviewService) Delete(ctx context.Context, actor Actor, reviewID string) error {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Where("id = ?", reviewID)
	if !actor.IsAdmin() {
		query = query.Where("author_id = ?", actor.ID)
	}

	result := query.Delete(&models.Review{})
	if result.Error != nil {
		return fmt.Errorf("review service: delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *ReviewService) authorName(ctx context.Context, actor Actor) string {
	switch actor.Role {
	case models.RoleUser:
		var profile models.UserProfile
		if err := s.db.WithContext(ctx).Where("account_id = ?", actor.ID).First(&profile).Error; err == nil {
			return profile.FullName
		}
	case models.RoleEmployer:
		var profile models.EmployerProfile
		if err := s.db.WithContext(ctx).Where("account_id = ?", actor.ID).First(&profile).Error; err == nil {
			return profile.CompanyName
		}
	}
	return "Anonymous"
}

func mapReview(row models.Review) ReviewDTO {
	return ReviewDTO{
		ID:         row.ID,
		AuthorID:   row.AuthorID,
		AuthorName: row.AuthorName,
		Role:       row.Role,
		Rating:     row.Rating,
		Comment:    row.Comment,
		Approved:   row.Approved,
		CreatedAt:  row.CreatedAt,
	}
}

func mapReviews(rows []models.Review) []ReviewDTO {
	items := make([]ReviewDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapReview(row))
	}
	return items
}
