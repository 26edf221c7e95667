package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/marketledger-backend/internal/marketerr"
	"github.com/yungbote/marketledger-backend/internal/requestdata"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondDomainError maps each sentinel to a distinct status and machine
// code, so a client can tell "try a smaller quantity" from "not yours".
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, marketerr.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, marketerr.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, marketerr.ErrUnauthorized):
		RespondError(c, http.StatusForbidden, "unauthorized", err)
	case errors.Is(err, marketerr.ErrInsufficientStock):
		RespondError(c, http.StatusConflict, "insufficient_stock", err)
	case errors.Is(err, marketerr.ErrInvalidPayment):
		RespondError(c, http.StatusPaymentRequired, "invalid_payment", err)
	case errors.Is(err, marketerr.ErrSelfPurchase):
		RespondError(c, http.StatusBadRequest, "self_purchase_forbidden", err)
	case errors.Is(err, marketerr.ErrTransferFailed):
		RespondError(c, http.StatusBadGateway, "transfer_failed", err)
	case errors.Is(err, marketerr.ErrUnsolicitedTransfer):
		RespondError(c, http.StatusBadRequest, "unsolicited_transfer", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

// callerID pulls the authenticated identity the middleware placed in context.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return rd.UserID, true
}
