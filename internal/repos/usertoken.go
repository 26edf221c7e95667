package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/types"
)

type UserTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tokens []*types.UserToken) ([]*types.UserToken, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserToken, error)
	GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	repoLog := baseLog.With("repo", "UserTokenRepo")
	return &userTokenRepo{db: db, log: repoLog}
}

func (utr *userTokenRepo) Create(ctx context.Context, tx *gorm.DB, tokens []*types.UserToken) ([]*types.UserToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = utr.db
	}
	if len(tokens) == 0 {
		return []*types.UserToken{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (utr *userTokenRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = utr.db
	}
	var result types.UserToken
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

func (utr *userTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.UserToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = utr.db
	}
	var result types.UserToken
	err := transaction.WithContext(ctx).
		Where("refresh_token = ?", refreshToken).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (utr *userTokenRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = utr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.UserToken{}).Error
}
