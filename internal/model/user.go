package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Dashboard roles. Role changes must stay inside this set; the users table
// enforces the same list with a CHECK constraint.
const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
	RoleViewer  = "viewer"
)

type User struct {
	ID               uuid.UUID      `db:"user_id" json:"id"`
	Email            string         `db:"email" json:"email"`
	FullName         string         `db:"full_name" json:"name"`
	Role             string         `db:"role" json:"role"`
	AssignedChannels pq.StringArray `db:"assigned_channels" json:"assigned_channels"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}
