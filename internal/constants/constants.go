package constants

// Session
const (
	SessionCookieName = "bounty_session"
	ContextKeyUserID  = "user_id"
)

// Auth
const (
	MinPasswordLength = 8
)

// Bounties
const (
	DefaultRewardCurrency = "APT"
	MinProgress           = 0
	MaxProgress           = 100
)

// Stats and leaderboard
const (
	RecentItemsLimit       = 5
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 100
	RecentActivityLimit    = 10
)
