package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/repos"
	"github.com/yungbote/marketledger-backend/internal/types"
)

// OrderService reads the per-buyer purchase ledger. The ledger is written
// solely by the purchase engine; there is no deletion or compaction.
type OrderService interface {
	History(ctx context.Context, buyerID uuid.UUID) ([]uint64, error)
	Entries(ctx context.Context, buyerID uuid.UUID) ([]*types.OrderEntry, error)
}

type orderService struct {
	db        *gorm.DB
	log       *logger.Logger
	orderRepo repos.OrderRepo
}

func NewOrderService(db *gorm.DB, log *logger.Logger, orderRepo repos.OrderRepo) OrderService {
	serviceLog := log.With("service", "OrderService")
	return &orderService{db: db, log: serviceLog, orderRepo: orderRepo}
}

// History returns the product identifiers the buyer purchased, one per unit,
// oldest first.
func (os *orderService) History(ctx context.Context, buyerID uuid.UUID) ([]uint64, error) {
	entries, err := os.orderRepo.ListByBuyer(ctx, nil, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order entries: %w", err)
	}
	ids := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ProductID)
	}
	return ids, nil
}

func (os *orderService) Entries(ctx context.Context, buyerID uuid.UUID) ([]*types.OrderEntry, error) {
	entries, err := os.orderRepo.ListByBuyer(ctx, nil, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order entries: %w", err)
	}
	return entries, nil
}
