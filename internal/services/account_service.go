package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nexttalent/nexttalent/internal/auth"
	"github.com/nexttalent/nexttalent/internal/models"
	apperrors "github.com/nexttalent/nexttalent/pkg/errors"
)

// AccountDTO represents the API-friendly account payload.
type AccountDTO struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	IsActive    bool        `json:"is_active"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// RegisterInput creates an account plus the role-appropriate profile in one
// step. FullName applies to seekers, CompanyName to employers.
type RegisterInput struct {
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password" validate:"required,min=8"`
	Role        models.Role `json:"role" validate:"required"`
	FullName    string      `json:"full_name" validate:"omitempty,max=255"`
	CompanyName string      `json:"company_name" validate:"omitempty,max=255"`
	Phone       string      `json:"phone" validate:"omitempty,max=64"`
}

// LoginInput carries credentials for authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult bundles the issued token with the authenticated account.
type AuthResult struct {
	Token   string     `json:"token"`
	Account AccountDTO `json:"account"`
}

// AccountService handles registration and credential authentication.
type AccountService struct {
	db  *gorm.DB
	jwt *auth.JWTService
}

// NewAccountService constructs an AccountService.
func NewAccountService(db *gorm.DB, jwt *auth.JWTService) (*AccountService, error) {
	if db == nil {
		return nil, errors.New("account service: db is required")
	}
	if jwt == nil {
		return nil, errors.New("account service: jwt service is required")
	}
	return &AccountService{db: db, jwt: jwt}, nil
}

// Register creates a seeker or employer account together with its profile.
// Admin accounts are seeded, not self-registered.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*AccountDTO, error) {
	ctx = ensureContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.Role != models.RoleUser && input.Role != models.RoleEmployer {
		return nil, apperrors.NewBadRequest("role must be user or employer")
	}
	if input.Role == models.RoleUser && strings.TrimSpace(input.FullName) == "" {
		return nil, apperrors.NewBadRequest("full name is required for job seekers")
	}
	if input.Role == models.RoleEmployer && strings.TrimSpace(input.CompanyName) == "" {
		return nil, apperrors.NewBadRequest("company name is required for employers")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("account service: hash password: %w", err)
	}

	account := models.Account{
		Email:    email,
		Password: string(hash),
		Role:     input.Role,
		IsActive: true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Account{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if existing > 0 {
			return apperrors.NewConflict("email is already registered")
		}

		if err := tx.Create(&account).Error; err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		switch input.Role {
		case models.RoleUser:
			profile := models.UserProfile{
				AccountID: account.ID,
				FullName:  strings.TrimSpace(input.FullName),
				Email:     email,
				Phone:     strings.TrimSpace(input.Phone),
			}
			if err := tx.Create(&profile).Error; err != nil {
				return fmt.Errorf("create user profile: %w", err)
			}
		case models.RoleEmployer:
			profile := models.EmployerProfile{
				AccountID:   account.ID,
				CompanyName: strings.TrimSpace(input.CompanyName),
				Email:       email,
				Phone:       strings.TrimSpace(input.Phone),
			}
			if err := tx.Create(&profile).Error; err != nil {
				return fmt.Errorf("create employer profile: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, fmt.Errorf("account service: register: %w", err)
	}

	dto := mapAccount(account)
	return &dto, nil
}

// Authenticate verifies credentials, stamps the login time, and issues an
// access token carrying the account's role.
func (s *AccountService) Authenticate(ctx context.Context, input LoginInput) (*AuthResult, error) {
	ctx = ensureContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var account models.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("account service: load account: %w", err)
	}
	if !account.IsActive {
		return nil, apperrors.ErrForbidden
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&account).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("account service: stamp login: %w", err)
	}
	account.LastLoginAt = &now

	token, err := s.jwt.GenerateAccessToken(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("account service: issue token: %w", err)
	}

	return &AuthResult{Token: token, Account: mapAccount(account)}, nil
}

// Get returns an account by id.
func (s *AccountService) Get(ctx context.Context, accountID string) (*AccountDTO, error) {
	ctx = ensureContext(ctx)

	var account models.Account
	if err := s.db.WithContext(ctx).Where("id = ?", accountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("account service: load account: %w", err)
	}
	dto := mapAccount(account)
	return &dto, nil
}

func mapAccount(account models.Account) AccountDTO {
	return AccountDTO{
		ID:          account.ID,
		Email:       account.Email,
		Role:        account.Role,
		IsActive:    account.IsActive,
		LastLoginAt: account.LastLoginAt,
		CreatedAt:   account.CreatedAt,
	}
}
