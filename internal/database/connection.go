// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asterohype/backend/internal/config"
	"github.com/asterohype/backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.ProductOverride{},
		&models.ProductCost{},
		&models.ProductTag{},
		&models.ProductTagAssignment{},
		&models.ProductOffer{},
		&models.ProductEditStatus{},
		&models.SizeConversion{},
		&models.TesterCode{},
		&models.ProductTestRating{},
		&models.StockNotification{},
		&models.Collection{},
		&models.CollectionProduct{},
		&models.AdminRequest{},
		&models.CJAccessToken{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_status ON users(status)",

		// Overlay indexes
		"CREATE INDEX IF NOT EXISTS idx_product_overrides_product ON product_overrides(shopify_product_id)",
		"CREATE INDEX IF NOT EXISTS idx_product_costs_product ON product_costs(shopify_product_id)",
		"CREATE INDEX IF NOT EXISTS idx_product_offers_active ON product_offers(offer_active)",
		"CREATE INDEX IF NOT EXISTS idx_edit_statuses_product ON product_edit_statuses(shopify_product_id)",
		"CREATE INDEX IF NOT EXISTS idx_tag_assignments_product ON product_tag_assignments(shopify_product_id)",
		"CREATE INDEX IF NOT EXISTS idx_tag_assignments_tag ON product_tag_assignments(tag_id)",
		"CREATE INDEX IF NOT EXISTS idx_size_conversions_product ON size_conversions(shopify_product_id)",

		// Tester / notification indexes
		"CREATE INDEX IF NOT EXISTS idx_test_ratings_product ON product_test_ratings(shopify_product_id)",
		"CREATE INDEX IF NOT EXISTS idx_stock_notifications_status ON stock_notifications(status, created_at DESC)",

		// Admin request indexes
		"CREATE INDEX IF NOT EXISTS idx_admin_requests_user_status ON admin_requests(user_id, status)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
