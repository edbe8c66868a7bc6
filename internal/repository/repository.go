package repository

import (
	"errors"

	"github.com/openbounty/bounty-board-api/internal/models"
)

// ErrSubmissionNotPending is returned by Review when the submission was
// already reviewed by the time the status flip ran.
var ErrSubmissionNotPending = errors.New("submission is not pending")

// BountyFilter holds filtering options for listing bounties
type BountyFilter struct {
	Category *models.BountyCategory
	Status   *models.BountyStatus
	Search   string
}

// SubmissionFilter holds filtering options for listing submissions
type SubmissionFilter struct {
	BountyID *uint64
	UserID   *uint64
	Status   *models.SubmissionStatus
}

// LeaderboardEntry is an aggregated per-user row for the leaderboard
type LeaderboardEntry struct {
	UserID           uint64  `json:"user_id"`
	Username         string  `json:"username"`
	Avatar           *string `json:"avatar"`
	Earnings         float64 `json:"earnings"`
	CompletedCount   int64   `json:"completed_count"`
	SubmissionsCount int64   `json:"submissions_count"`
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Leaderboard aggregates per-user earnings and submission counts,
	// ordered by earnings descending
	Leaderboard(limit int) ([]LeaderboardEntry, error)
}

// BountyRepository defines the interface for bounty data access
type BountyRepository interface {
	// Create creates a new bounty
	Create(bounty *models.Bounty) error

	// FindByID finds a bounty by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Bounty, error)

	// List retrieves bounties matching the filter, newest first, with
	// creator and submission relations loaded
	List(filter BountyFilter) ([]models.Bounty, error)

	// Update updates a bounty
	Update(bounty *models.Bounty) error

	// CountByCreator counts bounties created by a user
	CountByCreator(creatorID uint64) (int64, error)

	// ListRecentByCreator lists the most recent bounties created by a user
	ListRecentByCreator(creatorID uint64, limit int) ([]models.Bounty, error)
}

// SubmissionRepository defines the interface for submission data access
type SubmissionRepository interface {
	// Create creates a new submission
	Create(submission *models.Submission) error

	// FindByID finds a submission by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Submission, error)

	// List retrieves submissions matching the filter, newest first, with
	// bounty and user relations loaded
	List(filter SubmissionFilter) ([]models.Submission, error)

	// ListRecentByUser lists the most recent submissions by a user with
	// the parent bounty loaded
	ListRecentByUser(userID uint64, limit int) ([]models.Submission, error)

	// ListRecentReviewed lists the most recently reviewed submissions
	// (approved or rejected) with bounty and user loaded
	ListRecentReviewed(limit int) ([]models.Submission, error)

	// Review sets the review status, guarded on the submission still
	// being PENDING; an approval credits the bounty reward to the
	// submitter within the same transaction. Returns
	// ErrSubmissionNotPending when the guard fails.
	Review(submission *models.Submission, status models.SubmissionStatus, reward float64) error
}
