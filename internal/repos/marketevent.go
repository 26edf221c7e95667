package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/types"
)

type MarketEventRepo interface {
	Append(ctx context.Context, tx *gorm.DB, event *types.MarketEvent) (*types.MarketEvent, error)
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.MarketEvent, error)
}

type marketEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMarketEventRepo(db *gorm.DB, baseLog *logger.Logger) MarketEventRepo {
	repoLog := baseLog.With("repo", "MarketEventRepo")
	return &marketEventRepo{db: db, log: repoLog}
}

func (mer *marketEventRepo) Append(ctx context.Context, tx *gorm.DB, event *types.MarketEvent) (*types.MarketEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = mer.db
	}
	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (mer *marketEventRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.MarketEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = mer.db
	}
	if limit <= 0 {
		limit = 100
	}
	var results []*types.MarketEvent
	if err := transaction.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
