package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoleAdmin is the only role value that unlocks admin-gated routes. Any
// other value, or no value at all, means a default user.
const RoleAdmin = "admin"

// User is a registered customer. The email is the identity key used by
// tokens, carts, and payments.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"`
	Role     string             `bson:"role,omitempty" json:"role,omitempty"`
	Photo    string             `bson:"photo,omitempty" json:"photo,omitempty"`
}

// IsAdmin reports whether the stored role grants admin access.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
