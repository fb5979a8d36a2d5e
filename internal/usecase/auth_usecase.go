package usecase

import (
	"context"
	"errors"
	"time"

	"go-health-companion/internal/converter"
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/delivery/http/middleware"
	"go-health-companion/internal/intake"
	"go-health-companion/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	ErrUserNotInContext = errors.New("user not found in context")
	ErrInvalidToken     = errors.New("invalid or expired token")
)

// currentUserID returns the authenticated user set by the auth middleware.
func currentUserID(ctx context.Context) (string, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return "", ErrUserNotInContext
	}
	return userID, nil
}

type AuthUsecase interface {
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*dto.MeResponse, error)
}

type authUsecase struct {
	log         *logrus.Logger
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	registry    *intake.Registry
	now         func() time.Time
}

func NewAuthUsecase(
	log *logrus.Logger,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	registry *intake.Registry,
) AuthUsecase {
	return &authUsecase{
		log:         log,
		jwtService:  jwtService,
		redisClient: redisClient,
		registry:    registry,
		now:         time.Now,
	}
}

// Logout puts the current token id on the deny-list until the token would
// have expired anyway, and drops the user's in-memory intake session.
func (u *authUsecase) Logout(ctx context.Context) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	tokenID, ok := middleware.GetTokenIDFromContext(ctx)
	if !ok {
		return ErrInvalidToken
	}

	ttl := u.jwtService.GetAccessExpiry()
	if exp, ok := middleware.GetTokenExpiryFromContext(ctx); ok {
		ttl = exp.Sub(u.now())
	}
	if ttl > 0 {
		if err := u.redisClient.Set(ctx, middleware.RevokedTokenKey(tokenID), userID, ttl).Err(); err != nil {
			u.log.Warnf("Failed to revoke access token: %+v", err)
			return err
		}
	}

	u.registry.Evict(userID)
	u.log.Infof("User %s logged out", userID)
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.MeResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	email, _ := middleware.GetUserEmailFromContext(ctx)

	ctrl, err := u.registry.Get(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load intake session: %+v", err)
		return nil, err
	}
	state := ctrl.Snapshot()

	return &dto.MeResponse{
		UserID:            userID,
		Email:             email,
		CurrentStep:       int(state.CurrentStep),
		CompletionPercent: converter.CompletionPercent(state.Validity),
		IntakeCompleted:   state.Completed,
	}, nil
}
