// internal/services/stock_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/asterohype/backend/internal/models"
	"github.com/asterohype/backend/internal/utils"
)

// StockService tracks back-in-stock subscriptions. Registration is
// public; flushing pending notifications is an admin operation.
type StockService struct {
	db *gorm.DB
}

type StockSubscribeRequest struct {
	Email            string  `json:"email" validate:"required,email"`
	ShopifyProductID string  `json:"shopify_product_id" validate:"required,shopify_id"`
	ShopifyVariantID *string `json:"shopify_variant_id,omitempty"`
	ProductTitle     string  `json:"product_title" validate:"omitempty,max=255"`
}

type StockFlushResult struct {
	ShopifyProductID string `json:"shopify_product_id"`
	NotifiedCount    int    `json:"notified_count"`
	FailedCount      int    `json:"failed_count"`
}

// StockNotifier sends the back-in-stock email. Satisfied by
// EmailService; split out so handlers and tests can stub delivery.
type StockNotifier interface {
	SendBackInStock(to, productTitle, productID string) error
}

func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// Subscribe records interest in a product. The same email may hold one
// pending subscription per product; repeats are a no-op.
func (s *StockService) Subscribe(req *StockSubscribeRequest) (*models.StockNotification, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	normalizedID := NormalizeGID(req.ShopifyProductID)

	var existing models.StockNotification
	err := s.db.Where("email = ? AND shopify_product_id = ? AND status = ?",
		req.Email, normalizedID, models.NotificationStatusPending).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	notification := &models.StockNotification{
		Email:            req.Email,
		ShopifyProductID: normalizedID,
		ShopifyVariantID: req.ShopifyVariantID,
		ProductTitle:     req.ProductTitle,
		Status:           models.NotificationStatusPending,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create stock notification: %w", err)
	}
	return notification, nil
}

func (s *StockService) PendingForProduct(shopifyProductID string) ([]models.StockNotification, error) {
	var notifications []models.StockNotification
	err := s.db.Where("shopify_product_id = ? AND status = ?",
		NormalizeGID(shopifyProductID), models.NotificationStatusPending).
		Order("created_at ASC").Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending notifications: %w", err)
	}
	return notifications, nil
}

func (s *StockService) PendingCounts() (map[string]int64, error) {
	type row struct {
		ShopifyProductID string
		Count            int64
	}
	var rows []row
	err := s.db.Model(&models.StockNotification{}).
		Select("shopify_product_id, COUNT(*) as count").
		Where("status = ?", models.NotificationStatusPending).
		Group("shopify_product_id").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending notifications: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.ShopifyProductID] = r.Count
	}
	return counts, nil
}

// Flush sends every pending notification for the product and marks the
// delivered ones sent. Send failures leave the row pending so a later
// flush retries it.
func (s *StockService) Flush(shopifyProductID string, notifier StockNotifier) (*StockFlushResult, error) {
	normalizedID := NormalizeGID(shopifyProductID)

	pending, err := s.PendingForProduct(normalizedID)
	if err != nil {
		return nil, err
	}

	result := &StockFlushResult{ShopifyProductID: normalizedID}
	now := time.Now()
	for i := range pending {
		notification := &pending[i]
		if err := notifier.SendBackInStock(notification.Email, notification.ProductTitle, normalizedID); err != nil {
			result.FailedCount++
			continue
		}
		updateErr := s.db.Model(notification).Updates(map[string]interface{}{
			"status":  models.NotificationStatusSent,
			"sent_at": now,
		}).Error
		if updateErr != nil {
			return result, fmt.Errorf("failed to mark notification sent: %w", updateErr)
		}
		result.NotifiedCount++
	}
	return result, nil
}
