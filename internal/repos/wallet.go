package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/types"
)

type WalletRepo interface {
	Create(ctx context.Context, tx *gorm.DB, account *types.WalletAccount) (*types.WalletAccount, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.WalletAccount, error)
	// Debit subtracts amount only when the balance covers it; rows affected 0
	// means the account is missing or underfunded.
	Debit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amountCents int64) (int64, error)
	// Credit adds amount to an existing account; rows affected 0 means the
	// payee has no account to receive into.
	Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amountCents int64) (int64, error)
}

type walletRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWalletRepo(db *gorm.DB, baseLog *logger.Logger) WalletRepo {
	repoLog := baseLog.With("repo", "WalletRepo")
	return &walletRepo{db: db, log: repoLog}
}

func (wr *walletRepo) Create(ctx context.Context, tx *gorm.DB, account *types.WalletAccount) (*types.WalletAccount, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	if err := transaction.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (wr *walletRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.WalletAccount, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var result types.WalletAccount
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (wr *walletRepo) Debit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amountCents int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.WalletAccount{}).
		Where("user_id = ? AND balance_cents >= ?", userID, amountCents).
		Update("balance_cents", gorm.Expr("balance_cents - ?", amountCents))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (wr *walletRepo) Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amountCents int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.WalletAccount{}).
		Where("user_id = ?", userID).
		Update("balance_cents", gorm.Expr("balance_cents + ?", amountCents))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
