package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInsufficientTokens = errors.New("insufficient tokens")
var ErrForbidden = errors.New("access forbidden")

// Identity is the role-tagged identity yielded by the external identity
// resolver after verifying a bearer credential.
type Identity struct {
	UID   string
	Email string
	Name  string
	Admin bool
}

// Caller identifies the authenticated actor performing an operation.
type Caller struct {
	UID   string
	Admin bool
}

// Role returns the RBAC role string for the caller.
func (c Caller) Role() string {
	if c.Admin {
		return RoleAdmin
	}
	return RoleMember
}

// User holds the point and token ledger for one identity.
// Invariant: Points and Tokens never go below zero.
type User struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	UID       string    `json:"uid" bson:"uid"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Points    int       `json:"points" bson:"points"`
	Tokens    int       `json:"tokens" bson:"tokens"`
	Admin     bool      `json:"admin" bson:"admin"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// DisplayName returns the label shown on the leaderboard: name, falling
// back to email, falling back to the raw uid.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.UID
}

// CanAfford reports whether the user's token balance covers cost.
func (u *User) CanAfford(cost int) bool {
	return u.Tokens >= cost
}
