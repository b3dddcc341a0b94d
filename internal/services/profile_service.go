package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/models"
	apperrors "github.com/nexttalent/nexttalent/pkg/errors"
)

// UserProfileDTO represents a job seeker's profile payload.
type UserProfileDTO struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"account_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	ResumeLink string    `json:"resume_link"`
	Skills     []string  `json:"skills"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// EmployerProfileDTO represents a company profile payload.
type EmployerProfileDTO struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	About       string    `json:"about"`
	Website     string    `json:"website"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateUserProfileInput carries the editable seeker profile fields.
type UpdateUserProfileInput struct {
	FullName   string   `json:"full_name" validate:"required,max=255"`
	Phone      string   `json:"phone" validate:"omitempty,max=64"`
	ResumeLink string   `json:"resume_link" validate:"omitempty,url"`
	Skills     []string `json:"skills" validate:"dive,max=64"`
}

// UpdateEmployerProfileInput carries the editable company profile fields.
type UpdateEmployerProfileInput struct {
	CompanyName string `json:"company_name" validate:"required,max=255"`
	Phone       string `json:"phone" validate:"omitempty,max=64"`
	About       string `json:"about" validate:"omitempty,max=4000"`
	Website     string `json:"website" validate:"omitempty,url"`
}

// ProfileService reads and updates the role-specific profile records.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService constructs a ProfileService.
func NewProfileService(db *gorm.DB) (*ProfileService, error) {
	if db == nil {
		return nil, errors.New("profile service: db is required")
	}
	return &ProfileService{db: db}, nil
}

// GetUserProfile returns the seeker profile for an account.
func (s *ProfileService) GetUserProfile(ctx context.Context, accountID string) (*UserProfileDTO, error) {
	ctx = ensureContext(ctx)

	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("profile service: load user profile: %w", err)
	}
	dto := mapUserProfile(profile)
	return &dto, nil
}

// UpdateUserProfile replaces the editable fields on the seeker profile.
func (s *ProfileService) UpdateUserProfile(ctx context.Context, actor Actor, input UpdateUserProfileInput) (*UserProfileDTO, error) {
	ctx = ensureContext(ctx)
	if actor.Role != models.RoleUser {
		return nil, apperrors.ErrForbidden
	}

	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("account_id = ?", actor.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("profile service: load user profile: %w", err)
	}

	updates := map[string]any{
		"full_name":   strings.TrimSpace(input.FullName),
		"phone":       strings.TrimSpace(input.Phone),
		"resume_link": strings.TrimSpace(input.ResumeLink),
	}
	if input.Skills != nil {
		encoded, err := json.Marshal(input.Skills)
		if err != nil {
			return nil, fmt.Errorf("profile service: encode skills: %w", err)
		}
		updates["skills"] = datatypes.JSON(encoded)
	}

	if err := s.db.WithContext(ctx).Model(&profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("profile service: update user profile: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("account_id = ?", actor.ID).First(&profile).Error; err != nil {
		return nil, fmt.Errorf("profile service: reload user profile: %w", err)
	}

	dto := mapUserProfile(profile)
	return &dto, nil
}

// GetEmployerProfile returns the company profile for an account.
func (s *ProfileService) GetEmployerProfile(ctx context.Context, accountID string) (*EmployerProfileDTO, error) {
	ctx = ensureContext(ctx)

	var profile models.EmployerProfile
	if err := s.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("profile service: load employer profile: %w", err)
	}
	dto := mapEmployerProfile(profile)
	return &dto, nil
}

// UpdateEmployerProfile replaces the editable fields on the company profile.
func (s *ProfileService) UpdateEmployerProfile(ctx context.Context, actor Actor, input UpdateEmployerProfileInput) (*EmployerProfileDTO, error) {
	ctx = ensureContext(ctx)
	if actor.Role != models.RoleEmployer {
		return nil, apperrors.ErrForbidden
	}

	var profile models.EmployerProfile
	if err := s.db.WithContext(ctx).Where("account_id = ?", actor.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("profile service: load employer profile: %w", err)
	}

	updates := map[string]any{
		"company_name": strings.TrimSpace(input.CompanyName),
		"phone":        strings.TrimSpace(input.Phone),
		"about":        strings.TrimSpace(input.About),
		"website":      strings.TrimSpace(input.Website),
	}
	if err := s.db.WithContext(ctx).Model(&profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("profile service: update employer profile: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("account_id = ?", actor.ID).First(&profile).Error; err != nil {
		return nil, fmt.Errorf("profile service: reload employer profile: %w", err)
	}

	dto := mapEmployerProfile(profile)
	return &dto, nil
}

func mapUserProfile(profile models.UserProfile) UserProfileDTO {
	var skills []string
	if len(profile.Skills) > 0 {
		_ = json.Unmarshal(profile.Skills, &skills)
	}
	return UserProfileDTO{
		ID:         profile.ID,
		AccountID:  profile.AccountID,
		FullName:   profile.FullName,
		Email:      profile.Email,
		Phone:      profile.Phone,
		ResumeLink: profile.ResumeLink,
		Skills:     skills,
		UpdatedAt:  profile.UpdatedAt,
	}
}

func mapEmployerProfile(profile models.EmployerProfile) EmployerProfileDTO {
	return EmployerProfileDTO{
		ID:          profile.ID,
		AccountID:   profile.AccountID,
		CompanyName: profile.CompanyName,
		Email:       profile.Email,
		Phone:       profile.Phone,
		About:       profile.About,
		Website:     profile.Website,
		UpdatedAt:   profile.UpdatedAt,
	}
}
