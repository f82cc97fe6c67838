package dto

// LeaderboardEntry is a single row of the public top-reporters ranking.
// Position is 1-based.
type LeaderboardEntry struct {
	Position      int    `json:"position"`
	Username      string `json:"username"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	EventCount    int64  `json:"event_count"`
	ApprovedCount int64  `json:"approved_count"`
	PendingCount  int64  `json:"pending_count"`
}
