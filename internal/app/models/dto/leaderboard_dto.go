package dto

// LeaderboardEntry is one row of the ranked leaderboard. Highlight marks the
// top three positions; it is presentation only and not part of the ranking.
type LeaderboardEntry struct {
	Rank        int    `json:"rank" example:"1"`
	AccountID   int64  `json:"accountId" example:"7"`
	DisplayName string `json:"displayName" example:"John Doe"`
	Level       string `json:"level" example:"300"`
	Score       int    `json:"score" example:"2250"`
	Highlight   bool   `json:"highlight" example:"true"`
}

// LeaderboardResponse is the ordered leaderboard
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
