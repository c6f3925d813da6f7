package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TokenTypeRefresh = "refresh"

const (
	DefaultIssuer     = "mind-trap-api"
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now overrides the clock, mostly for tests
	Now func() time.Time
}

type Claims struct {
	Email string `json:"email,omitempty"`
	Type  string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 signed access and refresh tokens.
// It holds no mutable state.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("no signing secret provided")
	}

	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &TokenService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        cfg.Now,
	}, nil
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) IssueAccessToken(userID, email string) (string, error) {
	now := s.now()

	return s.sign(&Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	})
}

// IssueRefreshToken carries a random jti so two tokens issued in the same
// instant for the same user never collide.
func (s *TokenService) IssueRefreshToken(userID string) (string, error) {
	now := s.now()

	return s.sign(&Claims{
		Type: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	})
}

// Validate checks the signature, algorithm, issuer and expiry of token.
// Expiry is reported as apperr.ErrTokenExpired, everything else as
// apperr.ErrInvalidToken.
func (s *TokenService) Validate(token string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w, %v", apperr.ErrTokenExpired, err)
		}

		return nil, fmt.Errorf("%w, %v", apperr.ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w, missing subject", apperr.ErrInvalidToken)
	}

	return claims, nil
}

func (s *TokenService) ExtractUserID(token string) (string, error) {
	claims, err := s.Validate(token)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

func (s *TokenService) ExtractEmail(token string) (string, error) {
	claims, err := s.Validate(token)
	if err != nil {
		return "", err
	}

	return claims.Email, nil
}

func (s *TokenService) sign(c *Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token, %w", err)
	}

	return signed, nil
}
