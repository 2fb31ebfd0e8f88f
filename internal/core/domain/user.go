package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// User models an account that can authenticate and book destinations.
type User struct {
	ID           int64     `json:"id"         bson:"_id"           db:"id"`
	Name         string    `json:"name"       bson:"name"          db:"name"`
	Username     string    `json:"username"   bson:"username"      db:"username"`
	PasswordHash string    `json:"-"          bson:"password_hash" db:"password_hash"`
	Role         string    `json:"role"       bson:"role"          db:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"    db:"created_at"`
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}
