package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/marketledger-backend/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (oh *OrderHandler) History(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	ids, err := oh.orderService.History(c.Request.Context(), caller)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"order_history": ids})
}

func (oh *OrderHandler) Entries(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	entries, err := oh.orderService.Entries(c.Request.Context(), caller)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"entries": entries})
}
