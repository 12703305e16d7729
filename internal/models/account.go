package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a user's balance. Each user owns exactly one account.
// The balance is only ever mutated through the transfer engine's
// settlement step.
type Account struct {
	ID        uint            `gorm:"primarykey;column:account_id" json:"account_id"`
	UserID    uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:numeric(13,2);not null" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
