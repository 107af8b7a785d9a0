package model

import "time"

// User is a registered listener. Login is the primary key and doubles as the
// display name.
type User struct {
	Login     string    `json:"login" db:"login"`
	Password  string    `json:"-" db:"password"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
