package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/services"
	"github.com/yungbote/marketledger-backend/internal/sse"
)

type MarketHandler struct {
	log         *logger.Logger
	hub         *sse.Hub
	feedService services.MarketFeedService
}

func NewMarketHandler(log *logger.Logger, hub *sse.Hub, feedService services.MarketFeedService) *MarketHandler {
	return &MarketHandler{
		log:         log.With("handler", "MarketHandler"),
		hub:         hub,
		feedService: feedService,
	}
}

// Stream pushes live ProductListed/ProductPurchased notifications over SSE.
func (mh *MarketHandler) Stream(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	client := mh.hub.NewClient(caller)
	mh.hub.AddChannel(client, sse.ChannelMarket)
	defer mh.hub.CloseClient(client)
	mh.hub.ServeHTTP(c.Writer, c.Request, client)
}

// Events returns the most recent audit rows, newest first.
func (mh *MarketHandler) Events(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	events, err := mh.feedService.Recent(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}
