package dto

import (
	"time"

	"github.com/openbounty/bounty-board-api/internal/models"
)

// BountySummaryDTO is the compact bounty view embedded in submission and
// stats responses.
type BountySummaryDTO struct {
	ID             uint64  `json:"id"`
	Title          string  `json:"title"`
	Reward         float64 `json:"reward"`
	RewardCurrency string  `json:"reward_currency"`
}

// BountyDTO represents a bounty in API responses
type BountyDTO struct {
	ID             uint64                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Reward         float64               `json:"reward"`
	RewardCurrency string                `json:"reward_currency"`
	Category       models.BountyCategory `json:"category"`
	Project        string                `json:"project"`
	Status         models.BountyStatus   `json:"status"`
	DueDate        *time.Time            `json:"due_date"`
	Progress       int                   `json:"progress"`
	Tags           []string              `json:"tags"`
	CreatorID      uint64                `json:"creator_id"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Creator        *UserDTO              `json:"creator,omitempty"`
	Submissions    []SubmissionDTO       `json:"submissions"`
}

// ToBountySummaryDTO converts a Bounty model to BountySummaryDTO
func ToBountySummaryDTO(bounty models.Bounty) BountySummaryDTO {
	return BountySummaryDTO{
		ID:             bounty.ID,
		Title:          bounty.Title,
		Reward:         bounty.Reward,
		RewardCurrency: bounty.RewardCurrency,
	}
}

// ToBountyDTO converts a Bounty model to BountyDTO
func ToBountyDTO(bounty models.Bounty) BountyDTO {
	dto := BountyDTO{
		ID:             bounty.ID,
		Title:          bounty.Title,
		Description:    bounty.Description,
		Reward:         bounty.Reward,
		RewardCurrency: bounty.RewardCurrency,
		Category:       bounty.Category,
		Project:        bounty.Project,
		Status:         bounty.Status,
		DueDate:        bounty.DueDate,
		Progress:       bounty.Progress,
		Tags:           bounty.Tags,
		CreatorID:      bounty.CreatorID,
		CreatedAt:      bounty.CreatedAt,
		UpdatedAt:      bounty.UpdatedAt,
		Submissions:    []SubmissionDTO{},
	}

	if dto.Tags == nil {
		dto.Tags = []string{}
	}

	// Include creator if preloaded
	if bounty.Creator.ID != 0 {
		creator := ToUserDTO(bounty.Creator)
		dto.Creator = &creator
	}

	// Include submissions if preloaded
	for _, submission := range bounty.Submissions {
		dto.Submissions = append(dto.Submissions, ToSubmissionDTO(submission))
	}

	return dto
}

// ToBountyDTOs converts a slice of bounties
func ToBountyDTOs(bounties []models.Bounty) []BountyDTO {
	dtos := make([]BountyDTO, len(bounties))
	for i, bounty := range bounties {
		dtos[i] = ToBountyDTO(bounty)
	}
	return dtos
}
