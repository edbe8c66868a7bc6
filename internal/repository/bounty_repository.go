package repository

import (
	"strings"

	"github.com/openbounty/bounty-board-api/internal/models"
	"gorm.io/gorm"
)

// GormBountyRepository is a GORM implementation of BountyRepository
type GormBountyRepository struct {
	db *gorm.DB
}

// NewBountyRepository creates a new BountyRepository
func NewBountyRepository(db *gorm.DB) BountyRepository {
	return &GormBountyRepository{db: db}
}

// Create creates a new bounty
func (r *GormBountyRepository) Create(bounty *models.Bounty) error {
	return r.db.Create(bounty).Error
}

// FindByID finds a bounty by ID with optional preloading
func (r *GormBountyRepository) FindByID(id uint64, preload ...string) (*models.Bounty, error) {
	var bounty models.Bounty
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&bounty, id).Error; err != nil {
		return nil, err
	}

	return &bounty, nil
}

// List retrieves bounties matching the filter. Category and status are exact
// matches; search is a case-insensitive substring match OR-combined across
// title, description and project. Results are newest first with the id as a
// tiebreak so repeated calls return identical ordering.
func (r *GormBountyRepository) List(filter BountyFilter) ([]models.Bounty, error) {
	var bounties []models.Bounty

	query := r.db.Model(&models.Bounty{})

	if filter.Category != nil {
		query = query.Where("bounties.category = ?", *filter.Category)
	}
	if filter.Status != nil {
		query = query.Where("bounties.status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(bounties.title) LIKE ? OR LOWER(bounties.description) LIKE ? OR LOWER(bounties.project) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	err := query.
		Preload("Creator").
		Preload("Submissions").
		Preload("Submissions.User").
		Order("bounties.created_at DESC, bounties.id DESC").
		Find(&bounties).Error
	if err != nil {
		return nil, err
	}

	return bounties, nil
}

// Update updates a bounty
func (r *GormBountyRepository) Update(bounty *models.Bounty) error {
	return r.db.Save(bounty).Error
}

// CountByCreator counts bounties created by a user
func (r *GormBountyRepository) CountByCreator(creatorID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Bounty{}).
		Where("creator_id = ?", creatorID).
		Count(&count).Error
	return count, err
}

// ListRecentByCreator lists the most recent bounties created by a user
func (r *GormBountyRepository) ListRecentByCreator(creatorID uint64, limit int) ([]models.Bounty, error) {
	var bounties []models.Bounty
	err := r.db.
		Where("creator_id = ?", creatorID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&bounties).Error
	if err != nil {
		return nil, err
	}
	return bounties, nil
}
