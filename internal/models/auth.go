package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a member.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        UserInfo  `json:"user"`
	IssuedAt    time.Time `json:"issued_at"`
}

// UserInfo is the public projection of a user.
type UserInfo struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	FullName       string   `json:"full_name"`
	Role           UserRole `json:"role"`
	CongregationID *string  `json:"congregation_id,omitempty"`
}

// JWTClaims carries the identity and congregation scope inside access tokens.
type JWTClaims struct {
	UserID         string   `json:"uid"`
	Email          string   `json:"email"`
	Role           UserRole `json:"role"`
	CongregationID *string  `json:"congregation_id,omitempty"`
	jwt.RegisteredClaims
}

// CalendarScope derives the calendar query scope from the claims.
func (c *JWTClaims) CalendarScope() Scope {
	return Scope{UserID: c.UserID, CongregationID: c.CongregationID}
}
