package models

import (
	"time"

	"gorm.io/gorm"
)

type BountyStatus string

const (
	BountyStatusOpen      BountyStatus = "OPEN"
	BountyStatusInReview  BountyStatus = "IN_REVIEW"
	BountyStatusCompleted BountyStatus = "COMPLETED"
	BountyStatusCancelled BountyStatus = "CANCELLED"
)

type BountyCategory string

const (
	CategoryDesign      BountyCategory = "design"
	CategoryVideo       BountyCategory = "video"
	CategoryContent     BountyCategory = "content"
	CategoryDevelopment BountyCategory = "development"
	CategorySocial      BountyCategory = "social"
	CategoryEducational BountyCategory = "educational"
)

// ValidBountyStatus reports whether s is one of the known bounty statuses.
func ValidBountyStatus(s BountyStatus) bool {
	switch s {
	case BountyStatusOpen, BountyStatusInReview, BountyStatusCompleted, BountyStatusCancelled:
		return true
	}
	return false
}

// ValidBountyCategory reports whether c is one of the known categories.
func ValidBountyCategory(c BountyCategory) bool {
	switch c {
	case CategoryDesign, CategoryVideo, CategoryContent, CategoryDevelopment, CategorySocial, CategoryEducational:
		return true
	}
	return false
}

type Bounty struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Reward         float64        `gorm:"not null" json:"reward"`
	RewardCurrency string         `gorm:"type:varchar(20);not null;default:'APT'" json:"reward_currency"`
	Category       BountyCategory `gorm:"type:varchar(20);not null" json:"category"`
	Project        string         `gorm:"type:varchar(255)" json:"project"`
	Status         BountyStatus   `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	DueDate        *time.Time     `json:"due_date"`
	Progress       int            `gorm:"not null;default:0" json:"progress"`
	Tags           []string       `gorm:"serializer:json;type:text" json:"tags"`
	CreatorID      uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator     User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Submissions []Submission `gorm:"foreignKey:BountyID" json:"submissions,omitempty"`
}
