package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/openbounty/bounty-board-api/internal/constants"
	"github.com/openbounty/bounty-board-api/internal/models"
	"github.com/openbounty/bounty-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBountyNotFound    = errors.New("bounty not found")
	ErrNotBountyCreator  = errors.New("only the bounty creator can perform this action")
	ErrInvalidReward     = errors.New("reward must be a non-negative number")
	ErrInvalidCategory   = errors.New("unknown bounty category")
	ErrInvalidStatus     = errors.New("unknown bounty status")
	ErrInvalidDueDate    = errors.New("due date must be RFC3339 or YYYY-MM-DD")
	ErrInvalidProgress   = errors.New("progress must be between 0 and 100")
	ErrInvalidTransition = errors.New("bounty status transition not allowed")
)

// statusTransitions maps each bounty status to the statuses it may move to.
// COMPLETED and CANCELLED are terminal.
var statusTransitions = map[models.BountyStatus][]models.BountyStatus{
	models.BountyStatusOpen:     {models.BountyStatusInReview, models.BountyStatusCancelled},
	models.BountyStatusInReview: {models.BountyStatusCompleted, models.BountyStatusCancelled, models.BountyStatusOpen},
}

// BountyService handles bounty business logic
type BountyService struct {
	bountyRepo repository.BountyRepository
}

// NewBountyService creates a new BountyService
func NewBountyService(bountyRepo repository.BountyRepository) *BountyService {
	return &BountyService{
		bountyRepo: bountyRepo,
	}
}

// ListBountiesInput represents filters for listing bounties. The value "all"
// (or an empty string) on category/status means no filter on that field.
type ListBountiesInput struct {
	Category string
	Status   string
	Search   string
}

// ListBounties returns all bounties matching the filters, newest first,
// with creator and submission relations loaded.
func (s *BountyService) ListBounties(input ListBountiesInput) ([]models.Bounty, error) {
	filter := repository.BountyFilter{
		Search: strings.TrimSpace(input.Search),
	}

	if input.Category != "" && input.Category != "all" {
		category := models.BountyCategory(input.Category)
		if !models.ValidBountyCategory(category) {
			return nil, ErrInvalidCategory
		}
		filter.Category = &category
	}
	if input.Status != "" && input.Status != "all" {
		status := models.BountyStatus(input.Status)
		if !models.ValidBountyStatus(status) {
			return nil, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return s.bountyRepo.List(filter)
}

// GetBounty retrieves a bounty with creator and submissions loaded.
func (s *BountyService) GetBounty(id uint64) (*models.Bounty, error) {
	bounty, err := s.bountyRepo.FindByID(id, "Creator", "Submissions", "Submissions.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBountyNotFound
		}
		return nil, fmt.Errorf("failed to find bounty: %w", err)
	}
	return bounty, nil
}

// CreateBountyInput represents input for creating a bounty. Reward accepts a
// JSON number or a numeric string; Tags arrive pre-split.
type CreateBountyInput struct {
	Title       string
	Description string
	Reward      any
	Category    string
	Project     string
	DueDate     string
	Tags        []string
	CreatorID   uint64
}

// CreateBounty validates and creates a bounty owned by the acting user.
func (s *BountyService) CreateBounty(input CreateBountyInput) (*models.Bounty, error) {
	reward, err := ParseReward(input.Reward)
	if err != nil {
		return nil, err
	}

	category := models.BountyCategory(input.Category)
	if !models.ValidBountyCategory(category) {
		return nil, ErrInvalidCategory
	}

	dueDate, err := ParseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	bounty := &models.Bounty{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Reward:         reward,
		RewardCurrency: constants.DefaultRewardCurrency,
		Category:       category,
		Project:        input.Project,
		Status:         models.BountyStatusOpen,
		DueDate:        dueDate,
		Tags:           tags,
		CreatorID:      input.CreatorID,
	}

	if err := s.bountyRepo.Create(bounty); err != nil {
		return nil, fmt.Errorf("failed to create bounty: %w", err)
	}

	return s.bountyRepo.FindByID(bounty.ID, "Creator")
}

// UpdateBountyInput represents input for mutating bounty status/progress.
type UpdateBountyInput struct {
	BountyID uint64
	ActorID  uint64
	Status   *string
	Progress *int
}

// UpdateBounty applies a status and/or progress change. Only the creator may
// mutate a bounty, and status changes must follow the allowed transitions.
func (s *BountyService) UpdateBounty(input UpdateBountyInput) (*models.Bounty, error) {
	bounty, err := s.bountyRepo.FindByID(input.BountyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBountyNotFound
		}
		return nil, fmt.Errorf("failed to find bounty: %w", err)
	}

	if bounty.CreatorID != input.ActorID {
		return nil, ErrNotBountyCreator
	}

	if input.Status != nil {
		next := models.BountyStatus(*input.Status)
		if !models.ValidBountyStatus(next) {
			return nil, ErrInvalidStatus
		}
		if next != bounty.Status {
			if !transitionAllowed(bounty.Status, next) {
				return nil, ErrInvalidTransition
			}
			bounty.Status = next
		}
	}

	if input.Progress != nil {
		if *input.Progress < constants.MinProgress || *input.Progress > constants.MaxProgress {
			return nil, ErrInvalidProgress
		}
		bounty.Progress = *input.Progress
	}

	if err := s.bountyRepo.Update(bounty); err != nil {
		return nil, fmt.Errorf("failed to update bounty: %w", err)
	}

	return s.bountyRepo.FindByID(bounty.ID, "Creator", "Submissions", "Submissions.User")
}

func transitionAllowed(from, to models.BountyStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ParseReward coerces a JSON number or numeric string into a reward value.
// Non-numeric input, NaN, infinities and negative values are rejected rather
// than stored.
func ParseReward(v any) (float64, error) {
	var reward float64

	switch value := v.(type) {
	case float64:
		reward = value
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, ErrInvalidReward
		}
		reward = parsed
	default:
		return 0, ErrInvalidReward
	}

	if math.IsNaN(reward) || math.IsInf(reward, 0) || reward < 0 {
		return 0, ErrInvalidReward
	}

	return reward, nil
}

// ParseDueDate parses an optional due date. Blank means no deadline.
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}

	return nil, ErrInvalidDueDate
}
