package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/repos"
	"github.com/yungbote/marketledger-backend/internal/types"
)

// testEnv wires the full service stack against an in-memory sqlite database.
// Each test gets its own named shared-cache database so transactions see a
// single store without touching disk.
type testEnv struct {
	db       *gorm.DB
	log      *logger.Logger
	wallet   WalletService
	catalog  CatalogService
	purchase PurchaseService
	orders   OrderService
	feed     MarketFeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gdb.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.WalletAccount{},
		&types.Product{},
		&types.OrderEntry{},
		&types.MarketEvent{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	walletRepo := repos.NewWalletRepo(gdb, log)
	productRepo := repos.NewProductRepo(gdb, log)
	orderRepo := repos.NewOrderRepo(gdb, log)
	eventRepo := repos.NewMarketEventRepo(gdb, log)

	notifier := NewMarketNotifier(log, nil, nil)
	walletService := NewWalletService(gdb, log, walletRepo)

	return &testEnv{
		db:       gdb,
		log:      log,
		wallet:   walletService,
		catalog:  NewCatalogService(gdb, log, productRepo, eventRepo, notifier),
		purchase: NewPurchaseService(gdb, log, productRepo, orderRepo, eventRepo, walletService, notifier),
		orders:   NewOrderService(gdb, log, orderRepo),
		feed:     NewMarketFeedService(gdb, log, eventRepo),
	}
}

// newFundedUser opens a wallet account and optionally seeds it with a balance.
func (env *testEnv) newFundedUser(t *testing.T, balanceCents int64) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	if err := env.wallet.CreateAccount(context.Background(), env.db, userID); err != nil {
		t.Fatalf("create wallet account: %v", err)
	}
	if balanceCents > 0 {
		if _, err := env.wallet.Deposit(context.Background(), userID, balanceCents); err != nil {
			t.Fatalf("seed deposit: %v", err)
		}
	}
	return userID
}

func (env *testEnv) balance(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	account, err := env.wallet.Balance(context.Background(), userID)
	if err != nil {
		t.Fatalf("load balance: %v", err)
	}
	return account.BalanceCents
}
