package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;not null" json:"username"`
	Password     string   `gorm:"not null" json:"-"`
	Role         string   `gorm:"default:'user'" json:"role"`
	TokenVersion int      `gorm:"default:1" json:"-"`
	Account      *Account `gorm:"foreignKey:UserID" json:"account,omitempty"`
}

// CreateUserInput is the payload accepted at registration.
type CreateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PublicUser is the directory view exposed when a user picks a
// transfer counterparty.
type PublicUser struct {
	ID       uint   `json:"user_id"`
	Username string `json:"username"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}
