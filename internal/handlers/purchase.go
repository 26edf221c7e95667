package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/marketledger-backend/internal/services"
)

type PurchaseHandler struct {
	purchaseService services.PurchaseService
}

func NewPurchaseHandler(purchaseService services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

type purchaseRequest struct {
	Quantity int64 `json:"quantity"`
	// AmountCents is the value the buyer attaches to this request; it must
	// exactly equal price * quantity.
	AmountCents int64 `json:"amount_cents"`
}

func (ph *PurchaseHandler) Purchase(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	productID, err := parseProductID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	receipt, err := ph.purchaseService.Purchase(c.Request.Context(), productID, caller, req.Quantity, req.AmountCents)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"receipt": receipt})
}
