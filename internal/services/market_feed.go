package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/repos"
	"github.com/yungbote/marketledger-backend/internal/types"
)

// MarketFeedService reads the notification audit log. Consumers use it to
// catch up after missing live broadcasts; the table is authoritative.
type MarketFeedService interface {
	Recent(ctx context.Context, limit int) ([]*types.MarketEvent, error)
}

type marketFeedService struct {
	db        *gorm.DB
	log       *logger.Logger
	eventRepo repos.MarketEventRepo
}

func NewMarketFeedService(db *gorm.DB, log *logger.Logger, eventRepo repos.MarketEventRepo) MarketFeedService {
	serviceLog := log.With("service", "MarketFeedService")
	return &marketFeedService{db: db, log: serviceLog, eventRepo: eventRepo}
}

func (mfs *marketFeedService) Recent(ctx context.Context, limit int) ([]*types.MarketEvent, error) {
	events, err := mfs.eventRepo.ListRecent(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list market events: %w", err)
	}
	return events, nil
}
