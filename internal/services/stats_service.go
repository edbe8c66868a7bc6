package services

import (
	"errors"
	"fmt"

	"github.com/openbounty/bounty-board-api/internal/constants"
	"github.com/openbounty/bounty-board-api/internal/models"
	"github.com/openbounty/bounty-board-api/internal/repository"
	"gorm.io/gorm"
)

// StatsService computes per-user stats and the leaderboard. Everything here
// is derived on every call; there is no caching.
type StatsService struct {
	userRepo       repository.UserRepository
	bountyRepo     repository.BountyRepository
	submissionRepo repository.SubmissionRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(userRepo repository.UserRepository, bountyRepo repository.BountyRepository, submissionRepo repository.SubmissionRepository) *StatsService {
	return &StatsService{
		userRepo:       userRepo,
		bountyRepo:     bountyRepo,
		submissionRepo: submissionRepo,
	}
}

// UserStats holds the aggregate view for a single user.
type UserStats struct {
	Earnings          float64
	TasksCount        int64
	RecentSubmissions []models.Submission
	RecentBounties    []models.Bounty
}

// GetUserStats computes stats for the acting user. A user with no activity
// gets zeros and empty slices, never an error.
func (s *StatsService) GetUserStats(userID uint64) (*UserStats, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	tasksCount, err := s.bountyRepo.CountByCreator(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bounties: %w", err)
	}

	recentSubmissions, err := s.submissionRepo.ListRecentByUser(userID, constants.RecentItemsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent submissions: %w", err)
	}

	recentBounties, err := s.bountyRepo.ListRecentByCreator(userID, constants.RecentItemsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent bounties: %w", err)
	}

	return &UserStats{
		Earnings:          user.Earnings,
		TasksCount:        tasksCount,
		RecentSubmissions: recentSubmissions,
		RecentBounties:    recentBounties,
	}, nil
}

// Leaderboard holds the aggregated ranking plus recent review activity.
type Leaderboard struct {
	Entries        []repository.LeaderboardEntry
	RecentActivity []models.Submission
}

// GetLeaderboard aggregates per-user performance from the submission and
// bounty tables, ordered by earnings descending.
func (s *StatsService) GetLeaderboard(limit int) (*Leaderboard, error) {
	if limit <= 0 || limit > constants.MaxLeaderboardSize {
		limit = constants.DefaultLeaderboardSize
	}

	entries, err := s.userRepo.Leaderboard(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leaderboard: %w", err)
	}

	activity, err := s.submissionRepo.ListRecentReviewed(constants.RecentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent activity: %w", err)
	}

	return &Leaderboard{
		Entries:        entries,
		RecentActivity: activity,
	}, nil
}
