package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PasswordHasher interface {
	GenerateFromPassword(p string) (string, error)
	VerifyPasswd(p, encoded string) (bool, error)
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // seconds
}

type AuthResult struct {
	UserID  string         `json:"userId"`
	Profile *model.Profile `json:"profile"`
	Tokens  TokenPair      `json:"tokens"`
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,max=254"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"required,max=255"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthService implements the session lifecycle. Every operation that writes
// runs inside a single transaction.
type AuthService struct {
	db     *gorm.DB
	hasher PasswordHasher
	tokens *security.TokenService
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, hasher PasswordHasher, tokens *security.TokenService) *AuthService {
	return &AuthService{
		db:     db,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	hash, err := s.hasher.GenerateFromPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	now := s.now()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := model.Profile{
		ID:        user.ID,
		FullName:  in.FullName,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var pair *TokenPair
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check if email is registered, %w", err)
		}
		if count > 0 {
			return apperr.ErrEmailAlreadyRegistered
		}

		if err := tx.Create(&user).Error; err != nil {
			// Lost a race against a concurrent registration
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.ErrEmailAlreadyRegistered
			}
			return fmt.Errorf("failed to create user, %w", err)
		}

		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create profile, %w", err)
		}

		p, err := s.rotate(tx, user.ID, user.Email)
		if err != nil {
			return err
		}

		pair = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{UserID: user.ID, Profile: &profile, Tokens: *pair}, nil
}

// Login never tells the caller whether the email or the password was wrong
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	db := s.db.WithContext(ctx)

	var user model.User
	if err := db.Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	ok, err := s.hasher.VerifyPasswd(in.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}
	if !ok {
		return nil, apperr.ErrInvalidCredentials
	}

	if !user.Enabled {
		return nil, apperr.ErrAccountDisabled
	}

	var profile model.Profile
	if err := db.Where("id = ?", user.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s has no profile, %w", user.ID, apperr.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("failed to load profile, %w", err)
	}

	var pair *TokenPair
	err = db.Transaction(func(tx *gorm.DB) error {
		p, err := s.rotate(tx, user.ID, user.Email)
		if err != nil {
			return err
		}

		pair = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{UserID: user.ID, Profile: &profile, Tokens: *pair}, nil
}

// Refresh exchanges a stored refresh token for a new access token. The
// refresh token itself is returned unchanged; it only rotates on login.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperr.ErrInvalidRefreshToken
	}

	db := s.db.WithContext(ctx)

	var stored model.RefreshToken
	if err := db.Where("token = ?", refreshToken).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up refresh token, %w", err)
	}

	if !stored.ExpiresAt.After(s.now()) {
		if err := db.Delete(&model.RefreshToken{}, "id = ?", stored.ID).Error; err != nil {
			return nil, fmt.Errorf("failed to delete expired refresh token, %w", err)
		}
		return nil, apperr.ErrRefreshTokenExpired
	}

	var user model.User
	if err := db.Where("id = ?", stored.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	if !user.Enabled {
		return nil, apperr.ErrAccountDisabled
	}

	access, err := s.tokens.IssueAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: stored.Token,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

// Logout is idempotent
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.db.WithContext(ctx).
		Where("token = ?", refreshToken).
		Delete(&model.RefreshToken{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete refresh token, %w", err)
	}

	return nil
}

// rotate replaces every refresh token of the user with a fresh one. Two
// concurrent logins can still both insert after each other's delete; that
// window is accepted rather than serialising logins per user.
func (s *AuthService) rotate(tx *gorm.DB, userID, email string) (*TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(userID, email)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.RefreshToken{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear refresh tokens, %w", err)
	}

	now := s.now()
	err = tx.Create(&model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     refresh,
		ExpiresAt: now.Add(s.tokens.RefreshTTL()),
		CreatedAt: now,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token, %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}
