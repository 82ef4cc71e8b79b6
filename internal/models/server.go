package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ServerStatus is the review state of a submitted server.
type ServerStatus string

const (
	ServerPending  ServerStatus = "pending"
	ServerApproved ServerStatus = "approved"
	ServerRejected ServerStatus = "rejected"
)

// Server is a Discord server listed (or awaiting listing) in the directory.
type Server struct {
	ID               string       `json:"id"`
	SubmittedBy      string       `json:"submittedBy"`
	Name             string       `json:"name"`
	InviteLink       string       `json:"inviteLink"`
	Icon             string       `json:"icon,omitempty"`
	Banner           string       `json:"banner,omitempty"`
	Description      string       `json:"description"`
	MemberCount      int          `json:"memberCount"`
	ActivityLevel    string       `json:"activityLevel,omitempty"`
	ServerType       string       `json:"serverType,omitempty"`
	Category         string       `json:"category,omitempty"`
	Language         string       `json:"language,omitempty"`
	Region           string       `json:"region,omitempty"`
	Tags             []string     `json:"tags"`
	Status           ServerStatus `json:"status"`
	Suspended        bool         `json:"suspended"`
	SuspensionReason string       `json:"suspensionReason,omitempty"`
	SuspendedAt      *time.Time   `json:"suspendedAt,omitempty"`
	SuspendedBy      string       `json:"suspendedBy,omitempty"`
	AverageRating    float64      `json:"averageRating"`
	TotalRatings     int          `json:"totalRatings"`
	SubmittedAt      time.Time    `json:"submittedAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// FlexInt accepts both a JSON number and a numeric string. The original
// data format carries memberCount either way depending on the submitting
// client.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*f = FlexInt(n)
	return nil
}

type SubmitServerRequest struct {
	Name          string  `json:"name"`
	InviteLink    string  `json:"inviteLink"`
	Icon          string  `json:"icon"`
	Banner        string  `json:"banner"`
	Description   string  `json:"description"`
	MemberCount   FlexInt `json:"memberCount"`
	ActivityLevel string  `json:"activityLevel"`
	ServerType    string  `json:"serverType"`
	Category      string  `json:"category"`
	Language      string  `json:"language"`
	Region        string  `json:"region"`
	Tags          Tags    `json:"tags"`
}

// Validate checks the required submission fields.
func (r *SubmitServerRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.InviteLink == "" {
		return fmt.Errorf("invite link is required")
	}
	if !strings.HasPrefix(r.InviteLink, "https://discord.gg/") && !strings.HasPrefix(r.InviteLink, "https://discord.com/invite/") {
		return fmt.Errorf("invite link must be a discord.gg invite")
	}
	if len(r.Description) < 50 {
		return fmt.Errorf("description must be at least 50 characters")
	}
	return nil
}

// Tags accepts either a JSON array of strings or a single comma-separated
// string, normalizing to a trimmed list. Never nil after unmarshal.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*t = []string{}
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var list []string
		if err := jsonUnmarshal(data, &list); err != nil {
			return err
		}
		out := make([]string, 0, len(list))
		for _, v := range list {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		*t = out
		return nil
	}
	var raw string
	if err := jsonUnmarshal(data, &raw); err != nil {
		return err
	}
	out := []string{}
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	*t = out
	return nil
}

type UpdateServerRequest struct {
	Name          *string  `json:"name,omitempty"`
	InviteLink    *string  `json:"inviteLink,omitempty"`
	Icon          *string  `json:"icon,omitempty"`
	Banner        *string  `json:"banner,omitempty"`
	Description   *string  `json:"description,omitempty"`
	MemberCount   *FlexInt `json:"memberCount,omitempty"`
	ActivityLevel *string  `json:"activityLevel,omitempty"`
	ServerType    *string  `json:"serverType,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Language      *string  `json:"language,omitempty"`
	Region        *string  `json:"region,omitempty"`
	Tags          *Tags    `json:"tags,omitempty"`
}

type SuspendServerRequest struct {
	Reason string `json:"reason"`
}

// Stats is the public landing-page counters.
type Stats struct {
	TotalServers int `json:"totalServers"`
	TotalUsers   int `json:"totalUsers"`
	TotalMembers int `json:"totalMembers"`
	TotalReviews int `json:"totalReviews"`
}
