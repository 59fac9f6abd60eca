package secretariats

import "time"

// Secretariat is a top-level organisational unit owning departments.
type Secretariat struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
