package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/types"
)

type OrderRepo interface {
	Append(ctx context.Context, tx *gorm.DB, entries []*types.OrderEntry) ([]*types.OrderEntry, error)
	ListByBuyer(ctx context.Context, tx *gorm.DB, buyerID uuid.UUID) ([]*types.OrderEntry, error)
	CountByBuyer(ctx context.Context, tx *gorm.DB, buyerID uuid.UUID) (int64, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (or *orderRepo) Append(ctx context.Context, tx *gorm.DB, entries []*types.OrderEntry) ([]*types.OrderEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if len(entries) == 0 {
		return []*types.OrderEntry{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (or *orderRepo) ListByBuyer(ctx context.Context, tx *gorm.DB, buyerID uuid.UUID) ([]*types.OrderEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var results []*types.OrderEntry
	if err := transaction.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) CountByBuyer(ctx context.Context, tx *gorm.DB, buyerID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.OrderEntry{}).
		Where("buyer_id = ?", buyerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
