package types

import (
	"time"

	"github.com/google/uuid"
)

// WalletAccount holds a user's balance in integer cents. One account per user,
// created at registration so every seller can receive transfers.
type WalletAccount struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	BalanceCents int64     `gorm:"not null;column:balance_cents" json:"balance_cents"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (WalletAccount) TableName() string {
	return "wallet_account"
}
