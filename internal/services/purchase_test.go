package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/marketerr"
	"github.com/yungbote/marketledger-backend/internal/repos"
	"github.com/yungbote/marketledger-backend/internal/types"
)

func TestPurchaseSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)
	buyer := env.newFundedUser(t, 5000)

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 5)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	receipt, err := env.purchase.Purchase(ctx, product.ID, buyer, 2, 1000)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if receipt.Quantity != 2 || receipt.PricePaidCents != 1000 || receipt.StockRemaining != 3 {
		t.Fatalf("receipt: want qty=2 paid=1000 remaining=3 got qty=%d paid=%d remaining=%d",
			receipt.Quantity, receipt.PricePaidCents, receipt.StockRemaining)
	}
	if receipt.SellerID != seller || receipt.BuyerID != buyer {
		t.Fatalf("receipt parties wrong: seller=%s buyer=%s", receipt.SellerID, receipt.BuyerID)
	}

	got, err := env.catalog.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Stock != 3 {
		t.Fatalf("stock after purchase: want=3 got=%d", got.Stock)
	}

	// One history entry per unit, oldest first.
	history, err := env.orders.History(ctx, buyer)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[0] != product.ID || history[1] != product.ID {
		t.Fatalf("history: want=[%d %d] got=%v", product.ID, product.ID, history)
	}

	if got := env.balance(t, buyer); got != 4000 {
		t.Fatalf("buyer balance: want=4000 got=%d", got)
	}
	if got := env.balance(t, seller); got != 1000 {
		t.Fatalf("seller balance: want=1000 got=%d", got)
	}

	// The audit log carries both the listing and the purchase, newest first.
	events, err := env.feed.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("event count: want=2 got=%d", len(events))
	}
	if events[0].Kind != types.MarketEventProductPurchased || events[1].Kind != types.MarketEventProductListed {
		t.Fatalf("event order: got=[%s %s]", events[0].Kind, events[1].Kind)
	}
}

func TestPurchaseRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	buyer := uuid.New()

	for _, quantity := range []int64{0, -1} {
		if _, err := env.purchase.Purchase(ctx, 1, buyer, quantity, 0); !errors.Is(err, marketerr.ErrInvalidArgument) {
			t.Fatalf("quantity=%d: want=ErrInvalidArgument got=%v", quantity, err)
		}
	}
}

func TestPurchaseMissingOrDelistedProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)
	buyer := env.newFundedUser(t, 5000)

	if _, err := env.purchase.Purchase(ctx, 42, buyer, 1, 500); !errors.Is(err, marketerr.ErrNotFound) {
		t.Fatalf("missing product: want=ErrNotFound got=%v", err)
	}

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 5)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, err := env.catalog.Delist(ctx, product.ID, seller); err != nil {
		t.Fatalf("Delist: %v", err)
	}
	if _, err := env.purchase.Purchase(ctx, product.ID, buyer, 1, 500); !errors.Is(err, marketerr.ErrNotFound) {
		t.Fatalf("delisted product: want=ErrNotFound got=%v", err)
	}
}

func TestPurchaseInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)
	buyer := env.newFundedUser(t, 50000)

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 3)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, err := env.purchase.Purchase(ctx, product.ID, buyer, 4, 2000); !errors.Is(err, marketerr.ErrInsufficientStock) {
		t.Fatalf("want=ErrInsufficientStock got=%v", err)
	}
}

func TestPurchaseInvalidPaymentLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)
	buyer := env.newFundedUser(t, 5000)

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 5)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	// Underpay and overpay both fail; only the exact total is accepted.
	for _, amount := range []int64{999, 1001, 0} {
		if _, err := env.purchase.Purchase(ctx, product.ID, buyer, 2, amount); !errors.Is(err, marketerr.ErrInvalidPayment) {
			t.Fatalf("amount=%d: want=ErrInvalidPayment got=%v", amount, err)
		}
	}

	got, err := env.catalog.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Stock != 5 {
		t.Fatalf("stock mutated by failed purchase: want=5 got=%d", got.Stock)
	}
	history, err := env.orders.History(ctx, buyer)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("history mutated by failed purchase: %v", history)
	}
	if got := env.balance(t, buyer); got != 5000 {
		t.Fatalf("buyer balance mutated: want=5000 got=%d", got)
	}
}

func TestPurchaseSelfForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 5000)

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 5)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, err := env.purchase.Purchase(ctx, product.ID, seller, 1, 500); !errors.Is(err, marketerr.ErrSelfPurchase) {
		t.Fatalf("want=ErrSelfPurchase got=%v", err)
	}
}

func TestPurchaseUnderfundedBuyerRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)
	buyer := env.newFundedUser(t, 100)

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 5)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	if _, err := env.purchase.Purchase(ctx, product.ID, buyer, 1, 500); !errors.Is(err, marketerr.ErrTransferFailed) {
		t.Fatalf("want=ErrTransferFailed got=%v", err)
	}

	// The stock decrement happened inside the same transaction as the failed
	// debit, so it must have been rolled back.
	got, err := env.catalog.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Stock != 5 {
		t.Fatalf("stock after rollback: want=5 got=%d", got.Stock)
	}
	if got := env.balance(t, buyer); got != 100 {
		t.Fatalf("buyer balance after rollback: want=100 got=%d", got)
	}
	if got := env.balance(t, seller); got != 0 {
		t.Fatalf("seller balance after rollback: want=0 got=%d", got)
	}
}

// failingWallet satisfies WalletService but refuses every transfer, standing
// in for a payee that cannot accept value.
type failingWallet struct{}

func (failingWallet) CreateAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return nil
}

func (failingWallet) Balance(ctx context.Context, userID uuid.UUID) (*types.WalletAccount, error) {
	return nil, fmt.Errorf("not implemented")
}

func (failingWallet) Deposit(ctx context.Context, userID uuid.UUID, amountCents int64) (*types.WalletAccount, error) {
	return nil, fmt.Errorf("not implemented")
}

func (failingWallet) Transfer(ctx context.Context, tx *gorm.DB, payerID, payeeID uuid.UUID, amountCents int64) error {
	return fmt.Errorf("%w: payee cannot receive", marketerr.ErrTransferFailed)
}

func (failingWallet) ReceiveExternal(ctx context.Context, payerID uuid.UUID, amountCents int64) error {
	return fmt.Errorf("%w: send value only through a purchase", marketerr.ErrUnsolicitedTransfer)
}

func TestPurchaseTransferFailureRollsBackLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)
	buyer := env.newFundedUser(t, 5000)

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 5)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	productRepo := repos.NewProductRepo(env.db, env.log)
	orderRepo := repos.NewOrderRepo(env.db, env.log)
	eventRepo := repos.NewMarketEventRepo(env.db, env.log)
	purchase := NewPurchaseService(env.db, env.log, productRepo, orderRepo, eventRepo, failingWallet{}, NewMarketNotifier(env.log, nil, nil))

	if _, err := purchase.Purchase(ctx, product.ID, buyer, 2, 1000); !errors.Is(err, marketerr.ErrTransferFailed) {
		t.Fatalf("want=ErrTransferFailed got=%v", err)
	}

	got, err := env.catalog.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Stock != 5 {
		t.Fatalf("stock after rollback: want=5 got=%d", got.Stock)
	}
	history, err := env.orders.History(ctx, buyer)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("history after rollback: want empty got=%v", history)
	}
}

func TestPurchaseSequentialExhaustsStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.newFundedUser(t, 0)
	first := env.newFundedUser(t, 10000)
	second := env.newFundedUser(t, 10000)

	product, err := env.catalog.AddProduct(ctx, seller, "widget", 500, 3)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	if _, err := env.purchase.Purchase(ctx, product.ID, first, 2, 1000); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	if _, err := env.purchase.Purchase(ctx, product.ID, second, 2, 1000); !errors.Is(err, marketerr.ErrInsufficientStock) {
		t.Fatalf("second purchase: want=ErrInsufficientStock got=%v", err)
	}
	if _, err := env.purchase.Purchase(ctx, product.ID, second, 1, 500); err != nil {
		t.Fatalf("final unit purchase: %v", err)
	}

	got, err := env.catalog.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Stock != 0 {
		t.Fatalf("stock after exhaustion: want=0 got=%d", got.Stock)
	}
}
