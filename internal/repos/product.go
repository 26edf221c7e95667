package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/types"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error)
	GetByID(ctx context.Context, tx *gorm.DB, productID uint64) (*types.Product, error)
	// OverwriteStock sets stock on a listed product; returns rows affected so
	// callers can tell whether the record was still listed.
	OverwriteStock(ctx context.Context, tx *gorm.DB, productID uint64, newStock int64) (int64, error)
	// DecrementStock is the guarded purchase decrement: only applies when the
	// product is listed and has at least quantity units left.
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uint64, quantity int64) (int64, error)
	// Delist flips listed to false; returns rows affected (0 when the product
	// was already delisted or never existed).
	Delist(ctx context.Context, tx *gorm.DB, productID uint64) (int64, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, product *types.Product) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (pr *productRepo) GetByID(ctx context.Context, tx *gorm.DB, productID uint64) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Product
	err := transaction.WithContext(ctx).
		Where("id = ?", productID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *productRepo) OverwriteStock(ctx context.Context, tx *gorm.DB, productID uint64, newStock int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ? AND listed = ?", productID, true).
		Update("stock", newStock)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (pr *productRepo) DecrementStock(ctx context.Context, tx *gorm.DB, productID uint64, quantity int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ? AND listed = ? AND stock >= ?", productID, true, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (pr *productRepo) Delist(ctx context.Context, tx *gorm.DB, productID uint64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ? AND listed = ?", productID, true).
		Update("listed", false)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
