package dto

import (
	"time"

	"github.com/openbounty/bounty-board-api/internal/models"
	"github.com/openbounty/bounty-board-api/internal/repository"
	"github.com/openbounty/bounty-board-api/internal/services"
)

// StatsDTO is the aggregate view returned by GET /api/stats
type StatsDTO struct {
	Earnings          float64         `json:"earnings"`
	TasksCount        int64           `json:"tasks_count"`
	RecentSubmissions []SubmissionDTO `json:"recent_submissions"`
	RecentBounties    []BountyDTO     `json:"recent_bounties"`
}

// ToStatsDTO converts user stats to StatsDTO
func ToStatsDTO(stats services.UserStats) StatsDTO {
	return StatsDTO{
		Earnings:          stats.Earnings,
		TasksCount:        stats.TasksCount,
		RecentSubmissions: ToSubmissionDTOs(stats.RecentSubmissions),
		RecentBounties:    ToBountyDTOs(stats.RecentBounties),
	}
}

// LeaderboardUserDTO is one ranked row on the leaderboard.
type LeaderboardUserDTO struct {
	ID                uint64  `json:"id"`
	Username          string  `json:"username"`
	Avatar            *string `json:"avatar,omitempty"`
	Earnings          float64 `json:"earnings"`
	CompletedBounties int64   `json:"completed_bounties"`
	TotalSubmissions  int64   `json:"total_submissions"`
}

// ActivityDTO is one entry in the leaderboard's recent activity feed,
// derived from reviewed submissions.
type ActivityDTO struct {
	ID          uint64    `json:"id"`
	Type        string    `json:"type"`
	User        string    `json:"user"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// LeaderboardDTO is the response for GET /api/leaderboard
type LeaderboardDTO struct {
	Users          []LeaderboardUserDTO `json:"users"`
	RecentActivity []ActivityDTO        `json:"recent_activity"`
}

// ToLeaderboardDTO converts aggregated leaderboard data to LeaderboardDTO
func ToLeaderboardDTO(board services.Leaderboard) LeaderboardDTO {
	users := make([]LeaderboardUserDTO, len(board.Entries))
	for i, entry := range board.Entries {
		users[i] = toLeaderboardUserDTO(entry)
	}

	activity := make([]ActivityDTO, len(board.RecentActivity))
	for i, submission := range board.RecentActivity {
		activity[i] = toActivityDTO(submission)
	}

	return LeaderboardDTO{
		Users:          users,
		RecentActivity: activity,
	}
}

func toLeaderboardUserDTO(entry repository.LeaderboardEntry) LeaderboardUserDTO {
	return LeaderboardUserDTO{
		ID:                entry.UserID,
		Username:          entry.Username,
		Avatar:            entry.Avatar,
		Earnings:          entry.Earnings,
		CompletedBounties: entry.CompletedCount,
		TotalSubmissions:  entry.SubmissionsCount,
	}
}

func toActivityDTO(submission models.Submission) ActivityDTO {
	activityType := "submission_rejected"
	description := "Submission rejected for " + quoted(submission.Bounty.Title)
	if submission.Status == models.SubmissionStatusApproved {
		activityType = "submission_approved"
		description = "Submission approved for " + quoted(submission.Bounty.Title)
	}

	return ActivityDTO{
		ID:          submission.ID,
		Type:        activityType,
		User:        submission.User.Username,
		Description: description,
		Timestamp:   submission.UpdatedAt,
	}
}

func quoted(s string) string {
	return "\"" + s + "\""
}
