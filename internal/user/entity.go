// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	Plan         string     `db:"plan"`
	IsSubscribed bool       `db:"is_subscribed"`
	TokenVersion int        `db:"token_version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

const (
	RoleUser       = "user"
	RoleTrial      = "trial"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleTrial, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}
