// internal/services/edit_status_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asterohype/backend/internal/models"
	"github.com/asterohype/backend/internal/utils"
)

// EditStatusService tracks per-product curation progress across nine
// fields. Rows appear lazily on the first flag flip.
type EditStatusService struct {
	db *gorm.DB
}

type UpsertEditStatusRequest struct {
	ShopifyProductID string `json:"shopify_product_id" validate:"required,shopify_id"`
	TitleDone        bool   `json:"title_done"`
	PriceDone        bool   `json:"price_done"`
	DescriptionDone  bool   `json:"description_done"`
	AboutDone        bool   `json:"about_done"`
	ModelDone        bool   `json:"model_done"`
	ColorDone        bool   `json:"color_done"`
	TagsDone         bool   `json:"tags_done"`
	OffersDone       bool   `json:"offers_done"`
	ImagesDone       bool   `json:"images_done"`
}

type EditStatusView struct {
	models.ProductEditStatus
	AllDone           bool `json:"all_done"`
	CompletionPercent int  `json:"completion_percent"`
}

func NewEditStatusService(db *gorm.DB) *EditStatusService {
	return &EditStatusService{db: db}
}

func newEditStatusView(status models.ProductEditStatus) EditStatusView {
	return EditStatusView{
		ProductEditStatus: status,
		AllDone:           status.AllDone(),
		CompletionPercent: status.CompletionPercent(),
	}
}

func (s *EditStatusService) Upsert(req *UpsertEditStatusRequest) (*EditStatusView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := &models.ProductEditStatus{
		ShopifyProductID: NormalizeGID(req.ShopifyProductID),
		TitleDone:        req.TitleDone,
		PriceDone:        req.PriceDone,
		DescriptionDone:  req.DescriptionDone,
		AboutDone:        req.AboutDone,
		ModelDone:        req.ModelDone,
		ColorDone:        req.ColorDone,
		TagsDone:         req.TagsDone,
		OffersDone:       req.OffersDone,
		ImagesDone:       req.ImagesDone,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shopify_product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title_done", "price_done", "description_done", "about_done",
			"model_done", "color_done", "tags_done", "offers_done", "images_done",
			"updated_at",
		}),
	}).Create(status).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert edit status: %w", err)
	}

	return s.Get(status.ShopifyProductID)
}

func (s *EditStatusService) Get(shopifyProductID string) (*EditStatusView, error) {
	var status models.ProductEditStatus
	err := s.db.Where("shopify_product_id = ?", NormalizeGID(shopifyProductID)).
		First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("edit status not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	view := newEditStatusView(status)
	return &view, nil
}

func (s *EditStatusService) List() ([]EditStatusView, error) {
	var statuses []models.ProductEditStatus
	if err := s.db.Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch edit statuses: %w", err)
	}

	views := make([]EditStatusView, 0, len(statuses))
	for _, status := range statuses {
		views = append(views, newEditStatusView(status))
	}
	return views, nil
}

// ListPaged returns one page of edit-status views for the admin console.
func (s *EditStatusService) ListPaged(params utils.PaginationParams) ([]EditStatusView, int64, error) {
	var total int64
	if err := s.db.Model(&models.ProductEditStatus{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count edit statuses: %w", err)
	}

	var statuses []models.ProductEditStatus
	query := utils.ApplySort(s.db.Model(&models.ProductEditStatus{}), params,
		[]string{"created_at", "updated_at", "shopify_product_id"})
	if err := utils.ApplyPagination(query, params).Find(&statuses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch edit statuses: %w", err)
	}

	views := make([]EditStatusView, 0, len(statuses))
	for _, status := range statuses {
		views = append(views, newEditStatusView(status))
	}
	return views, total, nil
}

// StatusByProduct returns views keyed by product id for the admin
// catalog listing.
func (s *EditStatusService) StatusByProduct() (map[string]EditStatusView, error) {
	views, err := s.List()
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]EditStatusView, len(views))
	for _, view := range views {
		byProduct[view.ShopifyProductID] = view
	}
	return byProduct, nil
}
