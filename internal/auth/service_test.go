package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hoptimisten/hoptimisten-backend/internal/users"
	pkgauth "github.com/hoptimisten/hoptimisten-backend/pkg/auth"
	"github.com/hoptimisten/hoptimisten-backend/pkg/config"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
	"github.com/hoptimisten/hoptimisten-backend/pkg/security"
)

type fakeUsers struct {
	findByUsernameFn func(ctx context.Context, username string) (*models.User, error)
}

func (f *fakeUsers) Create(ctx context.Context, input users.CreateUserInput) (*models.User, error) {
	return nil, nil
}

func (f *fakeUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.findByUsernameFn != nil {
		return f.findByUsernameFn(ctx, username)
	}
	return nil, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "hoptimisten-test",
		ExpirationMinutes: 60,
	}
}

func TestLoginMintsTokenForValidCredentials(t *testing.T) {
	hash, err := security.HashPassword("correct horse", config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	userID := uuid.New()
	repo := &fakeUsers{
		findByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			if username != "kassenwart" {
				return nil, nil
			}
			return &models.User{
				ID:           userID,
				Username:     "kassenwart",
				PasswordHash: hash,
				Role:         enums.UserRoleAdmin,
			}, nil
		},
	}

	// Real wall time so ParseAccessToken's expiry validation sees a live token.
	issued := time.Now().UTC().Truncate(time.Second)
	svc, err := NewService(ServiceParams{
		Users: repo,
		JWT:   testJWTConfig(),
		Now:   func() time.Time { return issued },
	})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginInput{Username: " kassenwart ", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.TokenType != "Bearer" {
		t.Fatalf("token type = %q", resp.TokenType)
	}
	if !resp.ExpiresAt.Equal(issued.Add(time.Hour)) {
		t.Fatalf("expiry = %v", resp.ExpiresAt)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != userID || claims.Username != "kassenwart" || claims.Role != enums.UserRoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := security.HashPassword("real password", config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &fakeUsers{
		findByUsernameFn: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: username, PasswordHash: hash, Role: enums.UserRoleOperator}, nil
		},
	}
	svc, err := NewService(ServiceParams{Users: repo, JWT: testJWTConfig()})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginInput{Username: "kassenwart", Password: "guess"})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownUserLooksLikeWrongPassword(t *testing.T) {
	svc, err := NewService(ServiceParams{Users: &fakeUsers{}, JWT: testJWTConfig()})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "whatever"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != "invalid credentials" {
		t.Fatalf("unknown user must not be distinguishable, got %q", typed.Message())
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc, err := NewService(ServiceParams{Users: &fakeUsers{}, JWT: testJWTConfig()})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
