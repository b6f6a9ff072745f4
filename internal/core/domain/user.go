package domain

import (
	"errors"
	"time"
)

// Role gates which operation classes a user may perform. It is fixed at
// registration.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// ClassLevel is the grade a student belongs to. Assignments carry the level
// they are published for; students only see assignments matching their own.
type ClassLevel string

const (
	ClassEleventh ClassLevel = "eleventh"
	ClassTwelfth  ClassLevel = "twelfth"
)

// Valid reports whether l is one of the known class levels.
func (l ClassLevel) Valid() bool {
	return l == ClassEleventh || l == ClassTwelfth
}

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidRegistration = errors.New("invalid registration details")
	ErrUserExists          = errors.New("username is already taken")
	ErrUserNotFound        = errors.New("user not found")
	ErrTooManyAttempts     = errors.New("too many failed login attempts")
)

// User models a registered actor. ClassLevel is only meaningful for students;
// it is empty for teachers.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	ClassLevel   ClassLevel `json:"class_level,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
