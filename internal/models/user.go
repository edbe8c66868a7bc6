package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Email         string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username      string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash  string         `gorm:"type:varchar(255);not null" json:"-"`
	Avatar        *string        `gorm:"type:varchar(512)" json:"avatar"`
	WalletAddress *string        `gorm:"type:varchar(128)" json:"wallet_address"`
	Earnings      float64        `gorm:"not null;default:0" json:"earnings"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedBounties []Bounty     `gorm:"foreignKey:CreatorID" json:"-"`
	Submissions     []Submission `gorm:"foreignKey:UserID" json:"-"`
}
