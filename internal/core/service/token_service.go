package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskforge/rewards-api/internal/core/domain"
	"github.com/taskforge/rewards-api/internal/core/ports"
)

const defaultTokenValidityDays = 30

type sharedTokenService struct {
	store     ports.SharedTokenStore
	users     ports.UserRepository
	jwtSecret string
	loginTTL  time.Duration
	log       zerolog.Logger
}

// NewSharedTokenService returns a SharedTokenService implementation.
// loginTTL bounds the lifetime of credentials minted by Login.
func NewSharedTokenService(
	store ports.SharedTokenStore,
	users ports.UserRepository,
	jwtSecret string,
	loginTTL time.Duration,
	log zerolog.Logger,
) ports.SharedTokenService {
	if loginTTL <= 0 {
		loginTTL = 24 * time.Hour
	}
	return &sharedTokenService{
		store:     store,
		users:     users,
		jwtSecret: jwtSecret,
		loginTTL:  loginTTL,
		log:       log,
	}
}

func (s *sharedTokenService) Generate(ctx context.Context, targetUID string, daysValid int) (*ports.SharedTokenGrant, error) {
	if daysValid <= 0 {
		daysValid = defaultTokenValidityDays
	}

	// The target must already exist in the ledger; shared tokens grant
	// access to an identity, they do not create one.
	if _, err := s.users.FindByUID(ctx, targetUID); err != nil {
		return nil, fmt.Errorf("generate shared token: %w", err)
	}

	token := uuid.NewString()
	ttl := time.Duration(daysValid) * 24 * time.Hour
	if err := s.store.Save(ctx, token, targetUID, ttl); err != nil {
		return nil, fmt.Errorf("generate shared token: %w", err)
	}

	s.log.Info().Str("target_uid", targetUID).Int("days_valid", daysValid).Msg("shared token generated")

	return &ports.SharedTokenGrant{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}, nil
}

func (s *sharedTokenService) Login(ctx context.Context, token string) (*ports.LoginResult, error) {
	uid, err := s.store.Lookup(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("shared token login: %w", err)
	}

	user, err := s.users.FindByUID(ctx, uid)
	if err != nil {
		// The target was removed after the token was minted; treat the
		// token as dead rather than leaking which uids exist.
		return nil, fmt.Errorf("shared token login: %w", domain.ErrInvalidSharedToken)
	}

	expiresAt := time.Now().UTC().Add(s.loginTTL)
	signed, err := s.mintCredential(user, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("shared token login: %w", err)
	}

	s.log.Info().Str("uid", user.UID).Msg("shared token login")

	return &ports.LoginResult{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *sharedTokenService) mintCredential(user *domain.User, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"uid":   user.UID,
		"admin": user.Admin,
		"email": user.Email,
		"name":  user.Name,
		"exp":   expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
