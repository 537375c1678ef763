package models

// DayActivity is the number of reviews on one UTC calendar day (key YYYY-MM-DD).
type DayActivity struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Intensity int    `json:"intensity"`
}

type StreakStats struct {
	TotalReviews     int `json:"total_reviews"`
	MaxCount         int `json:"max_count"`
	LongestStreak    int `json:"longest_streak"`
	LongestHotStreak int `json:"longest_hot_streak"`
}
