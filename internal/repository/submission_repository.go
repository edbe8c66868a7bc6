package repository

import (
	"github.com/openbounty/bounty-board-api/internal/models"
	"gorm.io/gorm"
)

// GormSubmissionRepository is a GORM implementation of SubmissionRepository
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// Create creates a new submission
func (r *GormSubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

// FindByID finds a submission by ID with optional preloading
func (r *GormSubmissionRepository) FindByID(id uint64, preload ...string) (*models.Submission, error) {
	var submission models.Submission
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&submission, id).Error; err != nil {
		return nil, err
	}

	return &submission, nil
}

// List retrieves submissions matching the filter, newest first
func (r *GormSubmissionRepository) List(filter SubmissionFilter) ([]models.Submission, error) {
	var submissions []models.Submission

	query := r.db.Model(&models.Submission{})

	if filter.BountyID != nil {
		query = query.Where("bounty_id = ?", *filter.BountyID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	err := query.
		Preload("Bounty").
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

// ListRecentByUser lists the most recent submissions by a user with the
// parent bounty loaded
func (r *GormSubmissionRepository) ListRecentByUser(userID uint64, limit int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.
		Preload("Bounty").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// ListRecentReviewed lists the most recently reviewed submissions
func (r *GormSubmissionRepository) ListRecentReviewed(limit int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.
		Preload("Bounty").
		Preload("User").
		Where("status IN ?", []models.SubmissionStatus{
			models.SubmissionStatusApproved,
			models.SubmissionStatusRejected,
		}).
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// Review sets the review status. The flip is guarded on the row still being
// PENDING so two racing reviewers cannot both succeed. An approval credits
// the bounty reward to the submitter; both writes happen in one transaction
// so earnings never drift from the submission record.
func (r *GormSubmissionRepository) Review(submission *models.Submission, status models.SubmissionStatus, reward float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Submission{}).
			Where("id = ? AND status = ?", submission.ID, models.SubmissionStatusPending).
			Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrSubmissionNotPending
		}
		submission.Status = status

		if status == models.SubmissionStatusApproved {
			if err := tx.Model(&models.User{}).
				Where("id = ?", submission.UserID).
				Update("earnings", gorm.Expr("earnings + ?", reward)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
