package users

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Premium   bool      `json:"premium"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Tier returns the plan tier implied by the premium flag.
func (u User) Tier() string {
	if u.Premium {
		return "premium"
	}
	return "free"
}
