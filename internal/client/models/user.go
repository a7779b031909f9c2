// Package models defines the marketplace entities the console caches
// locally. The server owns every entity; these are read copies.
package models

import "time"

type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
)

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)

type User struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	Status      UserStatus `json:"status"`
	Barangay    string     `json:"barangay,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (u User) Key() string { return u.ID }

// Banned reports whether the account is currently banned.
func (u User) Banned() bool { return u.Status == UserStatusBanned }
