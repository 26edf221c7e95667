package types

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog record. The integer primary key doubles as the public
// product identifier: assigned by the database in strictly increasing order
// starting at 1, never reused. Records are never deleted; delisting flips
// Listed to false and is terminal.
type Product struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID   uuid.UUID `gorm:"type:uuid;not null;index;column:seller_id" json:"seller_id"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	PriceCents int64     `gorm:"not null;column:price_cents" json:"price_cents"`
	Stock      int64     `gorm:"not null;column:stock" json:"stock"`
	Listed     bool      `gorm:"not null;column:listed" json:"listed"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string {
	return "product"
}
