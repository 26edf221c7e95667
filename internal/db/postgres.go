package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/types"
	"github.com/yungbote/marketledger-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "marketledger", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.WalletAccount{},
		&types.Product{},
		&types.OrderEntry{},
		&types.MarketEvent{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	if err := s.db.Exec(`
		ALTER TABLE "user_token"
		ADD CONSTRAINT "fk_user_token_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "user"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		s.log.Warn("Failed to add fk_user_token_user_id (may already exist)", "error", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "wallet_account"
		ADD CONSTRAINT "fk_wallet_account_user_id"
		FOREIGN KEY ("user_id")
		REFERENCES "user"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		s.log.Warn("Failed to add fk_wallet_account_user_id (may already exist)", "error", err)
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
