package models

import (
	"fmt"
	"time"
)

// SanctionType is the kind of sanction applied to a user. Blacklist is
// terminal: applying it also flips the target user's blacklisted flag.
type SanctionType string

const (
	SanctionWarningOral SanctionType = "avertissement_oral"
	SanctionWarning1    SanctionType = "avertissement_1"
	SanctionWarning2    SanctionType = "avertissement_2"
	SanctionBanTemp     SanctionType = "ban_temp"
	SanctionBanPerm     SanctionType = "ban_perm"
	SanctionBlacklist   SanctionType = "blacklist"
)

func (t SanctionType) Valid() bool {
	switch t {
	case SanctionWarningOral, SanctionWarning1, SanctionWarning2,
		SanctionBanTemp, SanctionBanPerm, SanctionBlacklist:
		return true
	}
	return false
}

// Sanction is a disciplinary record against a user. Active flips to false
// lazily once expiresAt passes.
type Sanction struct {
	ID           string       `json:"id"`
	TargetUserID string       `json:"targetUserId"`
	Type         SanctionType `json:"type"`
	Duration     *int64       `json:"duration"` // seconds, nil = permanent
	Reason       string       `json:"reason"`
	AppliedBy    string       `json:"appliedBy"`
	AppliedAt    time.Time    `json:"appliedAt"`
	ExpiresAt    *time.Time   `json:"expiresAt"`
	Active       bool         `json:"active"`
}

// Expired reports whether the sanction's expiry has passed.
func (s *Sanction) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

type ApplySanctionRequest struct {
	TargetUserID string       `json:"targetUserId"`
	Type         SanctionType `json:"type"`
	Duration     *int64       `json:"duration"`
	Reason       string       `json:"reason"`
}

func (r *ApplySanctionRequest) Validate() error {
	if r.TargetUserID == "" {
		return fmt.Errorf("targetUserId is required")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("invalid sanction type %q", r.Type)
	}
	if r.Duration != nil && *r.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	return nil
}

// AppealStatus is the review state of an appeal.
type AppealStatus string

const (
	AppealPending  AppealStatus = "pending"
	AppealAccepted AppealStatus = "accepted"
	AppealRefused  AppealStatus = "refused"
)

// Appeal contests a server suspension. Only the owner of a currently
// suspended server (or staff) may open one; acceptance unsuspends the
// server.
type Appeal struct {
	ID              string       `json:"id"`
	ServerID        string       `json:"serverId"`
	ServerName      string       `json:"serverName"`
	SubmittedBy     string       `json:"submittedBy"`
	SubmittedByName string       `json:"submittedByName"`
	Explanation     string       `json:"explanation"`
	Status          AppealStatus `json:"status"`
	SubmittedAt     time.Time    `json:"submittedAt"`
	ReviewedBy      string       `json:"reviewedBy,omitempty"`
	ReviewedByName  string       `json:"reviewedByName,omitempty"`
	ReviewedAt      *time.Time   `json:"reviewedAt,omitempty"`
	Decision        string       `json:"decision,omitempty"`
}

type CreateAppealRequest struct {
	ServerID    string `json:"serverId"`
	Explanation string `json:"explanation"`
}

type DecideAppealRequest struct {
	Decision       AppealStatus `json:"decision"`
	DecisionReason string       `json:"decisionReason"`
}
