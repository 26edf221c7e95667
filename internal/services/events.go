package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/repos"
	"github.com/yungbote/marketledger-backend/internal/types"
)

// appendMarketEvent writes an audit row inside the caller's transaction so a
// committed mutation can never be missing from the event log.
func appendMarketEvent(ctx context.Context, tx *gorm.DB, eventRepo repos.MarketEventRepo, kind string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}
	event := &types.MarketEvent{
		Kind:      kind,
		Payload:   datatypes.JSON(raw),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := eventRepo.Append(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to append %s event: %w", kind, err)
	}
	return nil
}
