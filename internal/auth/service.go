package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hoptimisten/hoptimisten-backend/internal/users"
	pkgauth "github.com/hoptimisten/hoptimisten-backend/pkg/auth"
	"github.com/hoptimisten/hoptimisten-backend/pkg/config"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
	"github.com/hoptimisten/hoptimisten-backend/pkg/logger"
	"github.com/hoptimisten/hoptimisten-backend/pkg/security"
)

// LoginInput is the credential payload for the login endpoint.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted access token and its expiry.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Service authenticates operators and mints access tokens.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResponse, error)
}

// ServiceParams wires the auth service dependencies.
type ServiceParams struct {
	Users  users.Service
	JWT    config.JWTConfig
	Logger *logger.Logger
	Now    func() time.Time
}

type service struct {
	users  users.Service
	jwtCfg config.JWTConfig
	logg   *logger.Logger
	now    func() time.Time
}

// NewService wires an auth service with the provided collaborators.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users service required")
	}
	if params.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:  params.Users,
		jwtCfg: params.JWT,
		logg:   params.Logger,
		now:    now,
	}, nil
}

// Login verifies the credentials and returns a signed access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	match, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithUserID(ctx, user.ID.String()), "stored password hash unreadable", err)
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user logged in")
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
	}, nil
}
