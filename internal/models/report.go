package models

// SessionReport summarizes one completed test session for the results view.
type SessionReport struct {
	Session         TestSession `json:"session"`
	TotalScore      int         `json:"total_score"`
	TotalHits       int         `json:"total_hits"`
	TotalMisses     int         `json:"total_misses"`
	TotalClicks     int         `json:"total_clicks"`
	TotalTime       int         `json:"total_time"`
	OverallAccuracy int         `json:"overall_accuracy"`
	AvgResponseTime float64     `json:"avg_response_time"`
	Performance     string      `json:"performance"`
}

// PlayerStats aggregates a player's full recorded history for the admin view.
type PlayerStats struct {
	Player          Player `json:"player"`
	TotalSessions   int    `json:"total_sessions"`
	TotalGames      int    `json:"total_games"`
	TotalScore      int    `json:"total_score"`
	TotalHits       int    `json:"total_hits"`
	TotalMisses     int    `json:"total_misses"`
	TotalTime       int    `json:"total_time"`
	AverageAccuracy int    `json:"average_accuracy"`
}
