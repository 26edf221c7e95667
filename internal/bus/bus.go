package bus

import (
	"context"

	"github.com/yungbote/marketledger-backend/internal/sse"
)

// Bus fans market notifications out across instances. Messages are
// fire-and-forget: a dropped message is acceptable, a blocked publisher is not.
type Bus interface {
	Publish(ctx context.Context, msg sse.Message) error
	StartForwarder(ctx context.Context, onMsg func(m sse.Message)) error
	Close() error
}
