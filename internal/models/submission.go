package models

import (
	"time"

	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "PENDING"
	SubmissionStatusApproved SubmissionStatus = "APPROVED"
	SubmissionStatusRejected SubmissionStatus = "REJECTED"
)

// ValidSubmissionStatus reports whether s is one of the known submission statuses.
func ValidSubmissionStatus(s SubmissionStatus) bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	}
	return false
}

type Submission struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	Content   string           `gorm:"type:text;not null" json:"content"`
	Status    SubmissionStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	BountyID  uint64           `gorm:"not null" json:"bounty_id"`
	UserID    uint64           `gorm:"not null" json:"user_id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Bounty Bounty `gorm:"foreignKey:BountyID" json:"bounty,omitempty"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
