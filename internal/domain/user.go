package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) IsElevated() bool {
	return r == RoleManager || r == RoleAdmin
}

type User struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Role      Role

	CreatedAt time.Time
}

// Requester is the authenticated caller of a workflow operation.
type Requester struct {
	Email string
	Role  Role
}
