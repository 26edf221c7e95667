package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/marketledger-backend/internal/bus"
	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/sse"
)

// ProductListedEvent is the payload of a ProductListed notification and of
// the matching market_event audit row.
type ProductListedEvent struct {
	ProductID  uint64    `json:"product_id"`
	SellerID   uuid.UUID `json:"seller_id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Stock      int64     `json:"stock"`
}

// ProductPurchasedEvent mirrors ProductListedEvent for successful purchases.
type ProductPurchasedEvent struct {
	ProductID      uint64    `json:"product_id"`
	BuyerID        uuid.UUID `json:"buyer_id"`
	SellerID       uuid.UUID `json:"seller_id"`
	PricePaidCents int64     `json:"price_paid_cents"`
	QuantityBought int64     `json:"quantity_bought"`
}

// MarketNotifier broadcasts committed state changes. Fire-and-forget: a lost
// broadcast is acceptable because the market_event table is the audit record.
type MarketNotifier interface {
	ProductListed(ctx context.Context, event ProductListedEvent)
	ProductPurchased(ctx context.Context, event ProductPurchasedEvent)
}

type marketNotifier struct {
	log *logger.Logger
	hub *sse.Hub
	bus bus.Bus
}

func NewMarketNotifier(log *logger.Logger, hub *sse.Hub, eventBus bus.Bus) MarketNotifier {
	serviceLog := log.With("service", "MarketNotifier")
	return &marketNotifier{log: serviceLog, hub: hub, bus: eventBus}
}

func (mn *marketNotifier) ProductListed(ctx context.Context, event ProductListedEvent) {
	mn.broadcast(ctx, sse.Message{
		Channel: sse.ChannelMarket,
		Event:   sse.EventProductListed,
		Data:    event,
	})
}

func (mn *marketNotifier) ProductPurchased(ctx context.Context, event ProductPurchasedEvent) {
	mn.broadcast(ctx, sse.Message{
		Channel: sse.ChannelMarket,
		Event:   sse.EventProductPurchased,
		Data:    event,
	})
}

func (mn *marketNotifier) broadcast(ctx context.Context, msg sse.Message) {
	if mn.hub != nil {
		mn.hub.Broadcast(msg)
	}
	if mn.bus != nil {
		if err := mn.bus.Publish(ctx, msg); err != nil {
			mn.log.Warn("Failed to publish market event to bus", "event", msg.Event, "error", err)
		}
	}
}
