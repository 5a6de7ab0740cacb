package domain

import "time"

// User owns events. Only verified users may log in.
type User struct {
	ID             string
	Email          string
	HashedPassword string
	IsVerified     bool
	CreatedAt      time.Time
}
