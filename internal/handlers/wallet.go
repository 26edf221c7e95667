package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/marketledger-backend/internal/services"
)

type WalletHandler struct {
	walletService services.WalletService
}

func NewWalletHandler(walletService services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

func (wh *WalletHandler) Balance(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	account, err := wh.walletService.Balance(c.Request.Context(), caller)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"wallet": account})
}

type depositRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

func (wh *WalletHandler) Deposit(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	account, err := wh.walletService.Deposit(c.Request.Context(), caller, req.AmountCents)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"wallet": account})
}

type inboundTransferRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

// InboundTransfer is the rejection path: value pushed at the marketplace
// outside a purchase never creates state.
func (wh *WalletHandler) InboundTransfer(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	var req inboundTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := wh.walletService.ReceiveExternal(c.Request.Context(), caller, req.AmountCents); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": "accepted"})
}
