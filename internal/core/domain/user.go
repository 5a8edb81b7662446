package domain

import "time"

// Roles known to the marketplace. Stored and compared lowercase.
const (
	RoleAdmin    = "admin"
	RoleFarmer   = "fermer"
	RoleConsumer = "konsumator"
)

// ValidRole reports whether role is one of the three marketplace roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleFarmer, RoleConsumer:
		return true
	}
	return false
}

// User models an account in the marketplace. The password hash never leaves
// the server: it is excluded from every JSON representation.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"size:16;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
