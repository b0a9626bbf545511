package models

import "time"

// Professor defines the professor model based on the 'professors'
// table. Role is empty until the department head approves the
// registration.
type Professor struct {
	ID            int64     `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Qualification string    `json:"qualification" db:"qualification"`
	Department    string    `json:"department" db:"department"`
	Password      string    `json:"-" db:"password"`
	Role          string    `json:"role" db:"role"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// Approved reports whether the professor has been assigned a role
func (p *Professor) Approved() bool {
	return p.Role != ""
}
