package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/marketledger-backend/internal/services"
)

type ProductHandler struct {
	catalogService services.CatalogService
}

func NewProductHandler(catalogService services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

type createProductRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Stock      int64  `json:"stock"`
}

func (ph *ProductHandler) Create(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	product, err := ph.catalogService.AddProduct(c.Request.Context(), caller, req.Name, req.PriceCents, req.Stock)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

func (ph *ProductHandler) Get(c *gin.Context) {
	productID, err := parseProductID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	product, err := ph.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

type updateStockRequest struct {
	Stock int64 `json:"stock"`
}

func (ph *ProductHandler) UpdateStock(c *gin.Context) {
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
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	product, err := ph.catalogService.SetStock(c.Request.Context(), productID, caller, req.Stock)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

func (ph *ProductHandler) Delist(c *gin.Context) {
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
	product, err := ph.catalogService.Delist(c.Request.Context(), productID, caller)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

func parseProductID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
