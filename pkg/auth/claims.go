package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hoptimisten/hoptimisten-backend/pkg/enums"
)

// AccessTokenPayload is the caller-supplied identity minted into a token.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Username string
	Role     enums.UserRole
	JTI      string
}

// AccessTokenClaims are the typed JWT claims carried by access tokens.
type AccessTokenClaims struct {
	UserID   uuid.UUID      `json:"uid"`
	Username string         `json:"username"`
	Role     enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
