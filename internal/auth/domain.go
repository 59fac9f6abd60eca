package auth

import "time"

// Client represents an API client credential. Non-administrative clients are
// bound to a secretariat and only see rows belonging to it.
type Client struct {
	ID            int64
	Name          string
	TokenHash     string
	IsAdmin       bool
	SecretariatID *int64
	IsActive      bool
	CreatedAt     time.Time
}
