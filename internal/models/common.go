// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// IDs are generated app-side so the models do not depend on a
// database-specific default expression.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// OverlayModel is BaseModel without soft delete. Overlay rows are keyed
// by unique natural keys and deleted unconditionally; a tombstone would
// block the next lazy upsert.
type OverlayModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *OverlayModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRoleName string

const (
	RoleAdmin  UserRoleName = "admin"
	RoleTester UserRoleName = "tester"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
)

type SizeType string

const (
	SizeTypeClothing    SizeType = "clothing"
	SizeTypeShoes       SizeType = "shoes"
	SizeTypeAccessories SizeType = "accessories"
)

// Ordinal sentiment scale used by the tester review flow, worst to best.
type RatingSentiment string

const (
	SentimentHateIt    RatingSentiment = "hate_it"
	SentimentDislikeIt RatingSentiment = "dislike_it"
	SentimentNeutral   RatingSentiment = "neutral"
	SentimentLikeIt    RatingSentiment = "like_it"
	SentimentLoveIt    RatingSentiment = "love_it"
)

func (s RatingSentiment) Valid() bool {
	switch s {
	case SentimentHateIt, SentimentDislikeIt, SentimentNeutral, SentimentLikeIt, SentimentLoveIt:
		return true
	}
	return false
}
