package entity

import (
	"strings"
	"time"
)

// Session holds the gateway token for one logged-in admin. It is created on
// login and deleted on logout; nothing else in the process keeps the token.
type Session struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	GatewayToken string    `gorm:"not null" json:"-"`
	Username     string    `gorm:"index;not null" json:"username"`
	FullName     string    `json:"fullName"`
	Roles        string    `json:"-"` // space separated, upper case
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `gorm:"index" json:"expiresAt"`
}

func (s *Session) RoleList() []string {
	return strings.Fields(s.Roles)
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
