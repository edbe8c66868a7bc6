package repository

import (
	"github.com/openbounty/bounty-board-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Leaderboard aggregates per-user earnings and submission counts.
// Completed count only considers approved submissions.
func (r *GormUserRepository) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry

	err := r.db.Model(&models.User{}).
		Select(`users.id AS user_id,
			users.username AS username,
			users.avatar AS avatar,
			users.earnings AS earnings,
			COUNT(CASE WHEN submissions.status = ? THEN submissions.id END) AS completed_count,
			COUNT(submissions.id) AS submissions_count`, models.SubmissionStatusApproved).
		Joins("LEFT JOIN submissions ON submissions.user_id = users.id AND submissions.deleted_at IS NULL").
		Group("users.id, users.username, users.avatar, users.earnings").
		Order("users.earnings DESC, users.id ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
