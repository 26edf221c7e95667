package types

import (
	"time"

	"github.com/google/uuid"
)

// OrderEntry is one unit of purchase history: a purchase of quantity q writes
// q rows. The auto-increment key preserves chronological order per buyer.
// Rows are append-only; no update or delete path exists.
type OrderEntry struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index;column:buyer_id" json:"buyer_id"`
	ProductID uint64    `gorm:"not null;index;column:product_id" json:"product_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (OrderEntry) TableName() string {
	return "order_entry"
}
