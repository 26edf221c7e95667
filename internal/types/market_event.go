package types

import (
	"time"

	"gorm.io/datatypes"
)

const (
	MarketEventProductListed    = "ProductListed"
	MarketEventProductPurchased = "ProductPurchased"
)

// MarketEvent is the append-only audit log of notifications. Rows are written
// in the same transaction as the state change they describe; the realtime
// broadcast is derived from them and may be lost, the table may not.
type MarketEvent struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind      string         `gorm:"not null;index;column:kind" json:"kind"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (MarketEvent) TableName() string {
	return "market_event"
}
