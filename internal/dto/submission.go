package dto

import (
	"time"

	"github.com/openbounty/bounty-board-api/internal/models"
)

// SubmissionDTO represents a submission in API responses
type SubmissionDTO struct {
	ID        uint64                  `json:"id"`
	Content   string                  `json:"content"`
	Status    models.SubmissionStatus `json:"status"`
	BountyID  uint64                  `json:"bounty_id"`
	UserID    uint64                  `json:"user_id"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
	Bounty    *BountySummaryDTO       `json:"bounty,omitempty"`
	User      *UserDTO                `json:"user,omitempty"`
}

// ToSubmissionDTO converts a Submission model to SubmissionDTO
func ToSubmissionDTO(submission models.Submission) SubmissionDTO {
	dto := SubmissionDTO{
		ID:        submission.ID,
		Content:   submission.Content,
		Status:    submission.Status,
		BountyID:  submission.BountyID,
		UserID:    submission.UserID,
		CreatedAt: submission.CreatedAt,
		UpdatedAt: submission.UpdatedAt,
	}

	// Include bounty if preloaded
	if submission.Bounty.ID != 0 {
		bounty := ToBountySummaryDTO(submission.Bounty)
		dto.Bounty = &bounty
	}

	// Include user if preloaded
	if submission.User.ID != 0 {
		user := ToUserDTO(submission.User)
		dto.User = &user
	}

	return dto
}

// ToSubmissionDTOs converts a slice of submissions
func ToSubmissionDTOs(submissions []models.Submission) []SubmissionDTO {
	dtos := make([]SubmissionDTO, len(submissions))
	for i, submission := range submissions {
		dtos[i] = ToSubmissionDTO(submission)
	}
	return dtos
}
