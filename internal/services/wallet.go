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

// WalletService is the value-transfer collaborator. Transfer is only called
// by the purchase engine, inside the purchase transaction; any value pushed
// at the marketplace through ReceiveExternal is rejected outright.
type WalletService interface {
	CreateAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	Balance(ctx context.Context, userID uuid.UUID) (*types.WalletAccount, error)
	Deposit(ctx context.Context, userID uuid.UUID, amountCents int64) (*types.WalletAccount, error)
	Transfer(ctx context.Context, tx *gorm.DB, payerID, payeeID uuid.UUID, amountCents int64) error
	ReceiveExternal(ctx context.Context, payerID uuid.UUID, amountCents int64) error
}

type walletService struct {
	db         *gorm.DB
	log        *logger.Logger
	walletRepo repos.WalletRepo
}

func NewWalletService(db *gorm.DB, log *logger.Logger, walletRepo repos.WalletRepo) WalletService {
	serviceLog := log.With("service", "WalletService")
	return &walletService{db: db, log: serviceLog, walletRepo: walletRepo}
}

func (ws *walletService) CreateAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	account := &types.WalletAccount{
		UserID:       userID,
		BalanceCents: 0,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if _, err := ws.walletRepo.Create(ctx, tx, account); err != nil {
		return fmt.Errorf("failed to create wallet account: %w", err)
	}
	return nil
}

func (ws *walletService) Balance(ctx context.Context, userID uuid.UUID) (*types.WalletAccount, error) {
	account, err := ws.walletRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: wallet account", marketerr.ErrNotFound)
	}
	return account, nil
}

func (ws *walletService) Deposit(ctx context.Context, userID uuid.UUID, amountCents int64) (*types.WalletAccount, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", marketerr.ErrInvalidArgument)
	}
	var out *types.WalletAccount
	if err := ws.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := ws.walletRepo.Credit(ctx, tx, userID, amountCents)
		if err != nil {
			return fmt.Errorf("failed to credit wallet: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("%w: wallet account", marketerr.ErrNotFound)
		}
		account, err := ws.walletRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}
		out = account
		return nil
	}); err != nil {
		return nil, err
	}
	ws.log.Debug("Wallet deposit applied", "user_id", userID, "amount_cents", amountCents)
	return out, nil
}

func (ws *walletService) Transfer(ctx context.Context, tx *gorm.DB, payerID, payeeID uuid.UUID, amountCents int64) error {
	if amountCents <= 0 {
		return fmt.Errorf("%w: transfer amount must be positive", marketerr.ErrInvalidArgument)
	}
	rows, err := ws.walletRepo.Debit(ctx, tx, payerID, amountCents)
	if err != nil {
		return fmt.Errorf("%w: payer debit: %v", marketerr.ErrTransferFailed, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: payer account missing or underfunded", marketerr.ErrTransferFailed)
	}
	rows, err = ws.walletRepo.Credit(ctx, tx, payeeID, amountCents)
	if err != nil {
		return fmt.Errorf("%w: payee credit: %v", marketerr.ErrTransferFailed, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: payee cannot receive", marketerr.ErrTransferFailed)
	}
	return nil
}

func (ws *walletService) ReceiveExternal(ctx context.Context, payerID uuid.UUID, amountCents int64) error {
	ws.log.Warn("Rejected unsolicited transfer", "user_id", payerID, "amount_cents", amountCents)
	return fmt.Errorf("%w: send value only through a purchase", marketerr.ErrUnsolicitedTransfer)
}
