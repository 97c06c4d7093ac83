// internal/services/authorization_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asterohype/backend/internal/models"
)

// AuthorizationService is the single capability check for elevated
// access. Every mutating entry point consults this and nothing else.
type AuthorizationService struct {
	db *gorm.DB
}

func NewAuthorizationService(db *gorm.DB) *AuthorizationService {
	return &AuthorizationService{db: db}
}

func (s *AuthorizationService) IsAdmin(userID uuid.UUID) (bool, error) {
	return s.HasRole(userID, models.RoleAdmin)
}

func (s *AuthorizationService) HasRole(userID uuid.UUID, role models.UserRoleName) (bool, error) {
	var count int64
	if err := s.db.Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}
	return count > 0, nil
}

func (s *AuthorizationService) GrantRole(userID uuid.UUID, role models.UserRoleName, grantedBy *uuid.UUID) error {
	has, err := s.HasRole(userID, role)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	userRole := &models.UserRole{
		UserID:    userID,
		Role:      role,
		GrantedBy: grantedBy,
	}
	if err := s.db.Create(userRole).Error; err != nil {
		return fmt.Errorf("failed to grant role: %w", err)
	}
	return nil
}

func (s *AuthorizationService) RevokeRole(userID uuid.UUID, role models.UserRoleName) error {
	result := s.db.Where("user_id = ? AND role = ?", userID, role).
		Delete(&models.UserRole{})
	if result.Error != nil {
		return fmt.Errorf("failed to revoke role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("role not held")
	}
	return nil
}
