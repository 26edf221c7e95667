package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/marketerr"
	"github.com/yungbote/marketledger-backend/internal/repos"
	"github.com/yungbote/marketledger-backend/internal/types"
)

// CatalogService owns product records and their identifier space. Stock and
// the listed flag are the only mutable fields; seller and price are fixed at
// creation and mutation is gated on the caller being the recorded seller.
type CatalogService interface {
	AddProduct(ctx context.Context, sellerID uuid.UUID, name string, priceCents, stock int64) (*types.Product, error)
	GetProduct(ctx context.Context, productID uint64) (*types.Product, error)
	SetStock(ctx context.Context, productID uint64, callerID uuid.UUID, newStock int64) (*types.Product, error)
	Delist(ctx context.Context, productID uint64, callerID uuid.UUID) (*types.Product, error)
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	eventRepo   repos.MarketEventRepo
	notifier    MarketNotifier
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, eventRepo repos.MarketEventRepo, notifier MarketNotifier) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
		eventRepo:   eventRepo,
		notifier:    notifier,
	}
}

func (cs *catalogService) AddProduct(ctx context.Context, sellerID uuid.UUID, name string, priceCents, stock int64) (*types.Product, error) {
	if priceCents <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", marketerr.ErrInvalidArgument)
	}
	if stock <= 0 {
		return nil, fmt.Errorf("%w: initial stock must be positive", marketerr.ErrInvalidArgument)
	}
	name = strings.TrimSpace(name)

	product := &types.Product{
		SellerID:   sellerID,
		Name:       name,
		PriceCents: priceCents,
		Stock:      stock,
		Listed:     true,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	var listed ProductListedEvent
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.productRepo.Create(ctx, tx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		listed = ProductListedEvent{
			ProductID:  product.ID,
			SellerID:   product.SellerID,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Stock:      product.Stock,
		}
		return appendMarketEvent(ctx, tx, cs.eventRepo, types.MarketEventProductListed, listed)
	}); err != nil {
		return nil, err
	}

	cs.notifier.ProductListed(ctx, listed)
	cs.log.Info("Product listed", "product_id", product.ID, "seller_id", product.SellerID, "price_cents", product.PriceCents, "stock", product.Stock)
	return product, nil
}

func (cs *catalogService) GetProduct(ctx context.Context, productID uint64) (*types.Product, error) {
	product, err := cs.productRepo.GetByID(ctx, nil, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, marketerr.ErrNotFound
	}
	return product, nil
}

func (cs *catalogService) SetStock(ctx context.Context, productID uint64, callerID uuid.UUID, newStock int64) (*types.Product, error) {
	if newStock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", marketerr.ErrInvalidArgument)
	}
	var out *types.Product
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := cs.requireListed(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product.SellerID != callerID {
			return marketerr.ErrUnauthorized
		}
		rows, err := cs.productRepo.OverwriteStock(ctx, tx, productID, newStock)
		if err != nil {
			return fmt.Errorf("failed to overwrite stock: %w", err)
		}
		if rows == 0 {
			return marketerr.ErrNotFound
		}
		product.Stock = newStock
		out = product
		return nil
	}); err != nil {
		return nil, err
	}
	cs.log.Info("Product stock overwritten", "product_id", productID, "caller_id", callerID, "new_stock", newStock)
	return out, nil
}

func (cs *catalogService) Delist(ctx context.Context, productID uint64, callerID uuid.UUID) (*types.Product, error) {
	var out *types.Product
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := cs.requireListed(ctx, tx, productID)
		if err != nil {
			return err
		}
		if product.SellerID != callerID {
			return marketerr.ErrUnauthorized
		}
		rows, err := cs.productRepo.Delist(ctx, tx, productID)
		if err != nil {
			return fmt.Errorf("failed to delist product: %w", err)
		}
		if rows == 0 {
			return marketerr.ErrNotFound
		}
		product.Listed = false
		out = product
		return nil
	}); err != nil {
		return nil, err
	}
	cs.log.Info("Product delisted", "product_id", productID, "caller_id", callerID)
	return out, nil
}

// requireListed loads a product and applies the not-found conflation: a
// delisted record answers exactly like a missing one.
func (cs *catalogService) requireListed(ctx context.Context, tx *gorm.DB, productID uint64) (*types.Product, error) {
	product, err := cs.productRepo.GetByID(ctx, tx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil || !product.Listed {
		return nil, marketerr.ErrNotFound
	}
	return product, nil
}
