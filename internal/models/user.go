package models

import "time"

// UserRole represents the available member roles.
type UserRole string

const (
	RoleSuperAdmin        UserRole = "SUPERADMIN"
	RoleCongregationAdmin UserRole = "CONGREGATION_ADMIN"
	RoleMember            UserRole = "MEMBER"
)

// User represents an application user stored in the users table.
// CongregationID is the member's primary congregation; members without one
// still log in and see their personal calendar only.
type User struct {
	ID             string     `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	FullName       string     `db:"full_name" json:"full_name"`
	Role           UserRole   `db:"role" json:"role"`
	CongregationID *string    `db:"congregation_id" json:"congregation_id,omitempty"`
	Active         bool       `db:"active" json:"active"`
	LastLogin      *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
