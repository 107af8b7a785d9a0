package model

import "time"

// Feedback is a listener review of the site.
type Feedback struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	UserAgent string    `json:"user_agent" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
