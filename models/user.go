package models

import "time"

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer        UserRole = "customer"
	RoleRestaurantOwner UserRole = "restaurant_owner"
	RoleAdmin           UserRole = "admin"
)

// RegistrableRoles are the roles a caller may pick at sign-up. Admin
// accounts are seeded out of band.
var RegistrableRoles = map[UserRole]bool{
	RoleCustomer:        true,
	RoleRestaurantOwner: true,
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'customer'"`
	Verified     bool      `json:"verified" gorm:"default:false"`
	CustomerRef  string    `json:"-"` // payment-processor customer id, set on first checkout
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
