package departments

import "time"

// Department is a unit overtime work can be charged to. The owning
// secretariat is optional; deleting a secretariat detaches its departments
// instead of cascading.
type Department struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	SecretariatID   *int64    `json:"secretariat_id,omitempty"`
	SecretariatName *string   `json:"secretariat_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
