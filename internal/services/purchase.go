package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/marketerr"
	"github.com/yungbote/marketledger-backend/internal/repos"
	"github.com/yungbote/marketledger-backend/internal/types"
)

// Receipt summarizes an applied purchase transition.
type Receipt struct {
	ProductID      uint64    `json:"product_id"`
	BuyerID        uuid.UUID `json:"buyer_id"`
	SellerID       uuid.UUID `json:"seller_id"`
	Quantity       int64     `json:"quantity"`
	PricePaidCents int64     `json:"price_paid_cents"`
	StockRemaining int64     `json:"stock_remaining"`
	PurchasedAt    time.Time `json:"purchased_at"`
}

// PurchaseService executes the atomic buy transition: validate, decrement
// stock, move value buyer-to-seller, append the buyer's ledger, record the
// audit event. All of it happens in one database transaction; a failed value
// transfer aborts the transaction and restores stock.
type PurchaseService interface {
	Purchase(ctx context.Context, productID uint64, buyerID uuid.UUID, quantity, amountCents int64) (*Receipt, error)
}

type purchaseService struct {
	db            *gorm.DB
	log           *logger.Logger
	productRepo   repos.ProductRepo
	orderRepo     repos.OrderRepo
	eventRepo     repos.MarketEventRepo
	walletService WalletService
	notifier      MarketNotifier
}

func NewPurchaseService(
	db *gorm.DB,
	log *logger.Logger,
	productRepo repos.ProductRepo,
	orderRepo repos.OrderRepo,
	eventRepo repos.MarketEventRepo,
	walletService WalletService,
	notifier MarketNotifier,
) PurchaseService {
	serviceLog := log.With("service", "PurchaseService")
	return &purchaseService{
		db:            db,
		log:           serviceLog,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		eventRepo:     eventRepo,
		walletService: walletService,
		notifier:      notifier,
	}
}

func (ps *purchaseService) Purchase(ctx context.Context, productID uint64, buyerID uuid.UUID, quantity, amountCents int64) (*Receipt, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", marketerr.ErrInvalidArgument)
	}

	var receipt *Receipt
	var purchased ProductPurchasedEvent
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := ps.productRepo.GetByID(ctx, tx, productID)
		if err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}
		// Validation order is contractual: existence, stock, payment, self-buy.
		if product == nil || !product.Listed {
			return marketerr.ErrNotFound
		}
		if product.Stock < quantity {
			return marketerr.ErrInsufficientStock
		}
		if amountCents != product.PriceCents*quantity {
			return fmt.Errorf("%w: expected %d, got %d", marketerr.ErrInvalidPayment, product.PriceCents*quantity, amountCents)
		}
		if buyerID == product.SellerID {
			return marketerr.ErrSelfPurchase
		}

		// Guarded decrement: a concurrent purchase may have taken the stock
		// between the read above and here.
		rows, err := ps.productRepo.DecrementStock(ctx, tx, productID, quantity)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		if rows == 0 {
			return marketerr.ErrInsufficientStock
		}

		// Value moves before the ledger append; a transfer failure rolls the
		// decrement back with the rest of the transaction.
		if err := ps.walletService.Transfer(ctx, tx, buyerID, product.SellerID, amountCents); err != nil {
			return err
		}

		entries := make([]*types.OrderEntry, 0, quantity)
		now := time.Now().UTC()
		for i := int64(0); i < quantity; i++ {
			entries = append(entries, &types.OrderEntry{
				BuyerID:   buyerID,
				ProductID: productID,
				CreatedAt: now,
			})
		}
		if _, err := ps.orderRepo.Append(ctx, tx, entries); err != nil {
			return fmt.Errorf("failed to append order entries: %w", err)
		}

		purchased = ProductPurchasedEvent{
			ProductID:      productID,
			BuyerID:        buyerID,
			SellerID:       product.SellerID,
			PricePaidCents: amountCents,
			QuantityBought: quantity,
		}
		if err := appendMarketEvent(ctx, tx, ps.eventRepo, types.MarketEventProductPurchased, purchased); err != nil {
			return err
		}

		receipt = &Receipt{
			ProductID:      productID,
			BuyerID:        buyerID,
			SellerID:       product.SellerID,
			Quantity:       quantity,
			PricePaidCents: amountCents,
			StockRemaining: product.Stock - quantity,
			PurchasedAt:    now,
		}
		return nil
	}); err != nil {
		return nil, err
	}

	ps.notifier.ProductPurchased(ctx, purchased)
	ps.log.Info("Product purchased",
		"product_id", receipt.ProductID,
		"buyer_id", receipt.BuyerID,
		"seller_id", receipt.SellerID,
		"quantity", receipt.Quantity,
		"price_paid_cents", receipt.PricePaidCents,
	)
	return receipt, nil
}
