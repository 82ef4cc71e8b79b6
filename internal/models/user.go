package models

import (
	"fmt"
	"time"
)

// Role is the privilege level of a user. Roles are strictly ordered:
// user < moderator < admin < developer.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

var roleLevels = map[Role]int{
	RoleUser:      0,
	RoleModerator: 1,
	RoleAdmin:     2,
	RoleDeveloper: 3,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// AtLeast reports whether r grants at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return roleLevels[r] >= roleLevels[min]
}

// User is a Discord identity known to the directory. The record id is the
// Discord snowflake, assigned on first OAuth login.
type User struct {
	ID                 string     `json:"id"`
	DiscordID          string     `json:"discordId"`
	Username           string     `json:"username"`
	GlobalName         string     `json:"globalName"`
	Email              string     `json:"email,omitempty"`
	Avatar             string     `json:"avatar,omitempty"`
	Banner             string     `json:"banner,omitempty"`
	Role               Role       `json:"role"`
	Blacklisted        bool       `json:"blacklisted"`
	BlacklistReason    string     `json:"blacklistReason,omitempty"`
	BlacklistedAt      *time.Time `json:"blacklistedAt,omitempty"`
	BlacklistedBy      string     `json:"blacklistedBy,omitempty"`
	EmailNotifications *bool      `json:"emailNotifications,omitempty"`
	LastLogin          time.Time  `json:"lastLogin"`
}

// DisplayName returns the name shown in notifications and audit fields.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.GlobalName
}

// Validate checks basic user fields
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("id is required")
	}
	if u.Username == "" && u.GlobalName == "" {
		return fmt.Errorf("username is required")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	return nil
}

// SessionUser is the minimal stub stored in the session. Handlers that
// need more than id/username/role re-fetch the full record.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type UpdateProfileRequest struct {
	GlobalName         *string `json:"globalName,omitempty"`
	Email              *string `json:"email,omitempty"`
	EmailNotifications *bool   `json:"emailNotifications,omitempty"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required"`
}

type BlacklistRequest struct {
	Reason string `json:"reason"`
}
