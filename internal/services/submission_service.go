package services

import (
	"errors"
	"fmt"

	"github.com/openbounty/bounty-board-api/internal/models"
	"github.com/openbounty/bounty-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrInvalidReviewStatus     = errors.New("review status must be APPROVED or REJECTED")
	ErrSubmissionNotReviewable = errors.New("submission has already been reviewed")
	ErrInvalidSubmissionStatus = errors.New("unknown submission status")
)

// SubmissionService handles submission business logic
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	bountyRepo     repository.BountyRepository
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(submissionRepo repository.SubmissionRepository, bountyRepo repository.BountyRepository) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		bountyRepo:     bountyRepo,
	}
}

// ListSubmissionsInput represents filters for listing submissions. The value
// "all" (or an empty string) on status means no filter.
type ListSubmissionsInput struct {
	BountyID *uint64
	Status   string
}

// ListSubmissions returns submissions matching the filters, newest first,
// with bounty and user relations loaded.
func (s *SubmissionService) ListSubmissions(input ListSubmissionsInput) ([]models.Submission, error) {
	filter := repository.SubmissionFilter{
		BountyID: input.BountyID,
	}

	if input.Status != "" && input.Status != "all" {
		status := models.SubmissionStatus(input.Status)
		if !models.ValidSubmissionStatus(status) {
			return nil, ErrInvalidSubmissionStatus
		}
		filter.Status = &status
	}

	return s.submissionRepo.List(filter)
}

// CreateSubmissionInput represents input for submitting work to a bounty.
type CreateSubmissionInput struct {
	BountyID uint64
	Content  string
	UserID   uint64
}

// CreateSubmission creates a PENDING submission by the acting user. The same
// user may submit multiple times to the same bounty.
func (s *SubmissionService) CreateSubmission(input CreateSubmissionInput) (*models.Submission, error) {
	if _, err := s.bountyRepo.FindByID(input.BountyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBountyNotFound
		}
		return nil, fmt.Errorf("failed to find bounty: %w", err)
	}

	submission := &models.Submission{
		Content:  input.Content,
		Status:   models.SubmissionStatusPending,
		BountyID: input.BountyID,
		UserID:   input.UserID,
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return s.submissionRepo.FindByID(submission.ID, "Bounty", "User")
}

// ReviewSubmissionInput represents a review decision on a submission.
type ReviewSubmissionInput struct {
	SubmissionID uint64
	ActorID      uint64
	Status       string
}

// ReviewSubmission approves or rejects a pending submission. Only the
// creator of the parent bounty may review; an approval credits the bounty
// reward to the submitter atomically.
func (s *SubmissionService) ReviewSubmission(input ReviewSubmissionInput) (*models.Submission, error) {
	status := models.SubmissionStatus(input.Status)
	if status != models.SubmissionStatusApproved && status != models.SubmissionStatusRejected {
		return nil, ErrInvalidReviewStatus
	}

	submission, err := s.submissionRepo.FindByID(input.SubmissionID, "Bounty")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	if submission.Bounty.CreatorID != input.ActorID {
		return nil, ErrNotBountyCreator
	}

	if submission.Status != models.SubmissionStatusPending {
		return nil, ErrSubmissionNotReviewable
	}

	if err := s.submissionRepo.Review(submission, status, submission.Bounty.Reward); err != nil {
		// A racing reviewer may have flipped the status after our read
		if errors.Is(err, repository.ErrSubmissionNotPending) {
			return nil, ErrSubmissionNotReviewable
		}
		return nil, fmt.Errorf("failed to review submission: %w", err)
	}

	return s.submissionRepo.FindByID(submission.ID, "Bounty", "User")
}
