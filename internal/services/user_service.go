package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	nibRegex   = regexp.MustCompile(`^[0-9]{13}$`)
)

const minPasswordLength = 8

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// Signup registers a new user. Agents get their agent record in the same transaction.
func (s *userService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailRegex.MatchString(email) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email is not valid")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "password must be at least 8 characters")
	}
	if !nibRegex.MatchString(input.NIB) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nib must be 13 digits")
	}
	if !input.Role.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "role is not valid")
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		NIB:          input.NIB,
		Role:         input.Role,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if input.Role == models.RoleAgent {
			name := strings.TrimSpace(input.AgentName)
			if name == "" {
				name = email[:strings.Index(email, "@")]
			}
			agent := &models.Agent{Name: name}
			if err := tx.Create(agent).Error; err != nil {
				return err
			}
			user.AgentID = &agent.ID
		}
		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// Authenticate verifies an email and password pair. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Agent").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
