package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles and account states.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`     // user, admin
	Status    string             `bson:"status" json:"status"` // active, suspended
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Github    string             `bson:"github,omitempty" json:"github,omitempty"`
	Linkedin  string             `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserSummary is the public slice of a user attached to blogs and
// comments in responses.
type UserSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// IsAdmin is the single role predicate every admin-gated operation and
// the admin middleware share.
func IsAdmin(role string) bool {
	return role == RoleAdmin
}

// ValidRole reports whether r is a recognised role.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

// ValidUserStatus reports whether s is a recognised account state.
func ValidUserStatus(s string) bool {
	return s == UserStatusActive || s == UserStatusSuspended
}

// Summary returns the public view of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
