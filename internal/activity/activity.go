// Package activity turns a slice of review events into per-day counts and
// streak statistics. Days are UTC calendar days throughout.
package activity

import (
	"time"

	"github.com/vytor/flashdeck/internal/models"
)

const DayLayout = "2006-01-02"

// DayKey returns the UTC calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ByDay counts reviews with ReviewedAt in [start, end], keyed by UTC day.
// Days without reviews are absent.
func ByDay(reviews []models.ReviewEvent, start, end time.Time) map[string]int {
	counts := make(map[string]int)
	for _, r := range reviews {
		if r.ReviewedAt.Before(start) || r.ReviewedAt.After(end) {
			continue
		}
		counts[DayKey(r.ReviewedAt)]++
	}
	return counts
}

// Dense expands sparse counts into one entry per UTC day from start's day to
// end's day inclusive, oldest first. Missing days have count 0.
func Dense(counts map[string]int, start, end time.Time) []models.DayActivity {
	first, last := StartOfDay(start), StartOfDay(end)
	if last.Before(first) {
		return nil
	}
	days := make([]models.DayActivity, 0, int(last.Sub(first).Hours()/24)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(DayLayout)
		c := counts[key]
		days = append(days, models.DayActivity{Date: key, Count: c, Intensity: Intensity(c)})
	}
	return days
}

// Streaks computes totals and run lengths over a dense day series.
func Streaks(days []models.DayActivity) models.StreakStats {
	var s models.StreakStats
	for _, d := range days {
		s.TotalReviews += d.Count
		s.MaxCount = max(s.MaxCount, d.Count)
	}

	var run, hot int
	for _, d := range days {
		if d.Count > 0 {
			run++
		} else {
			run = 0
		}
		// a zero day never counts as hot, even when MaxCount is 0
		if d.Count > 0 && d.Count == s.MaxCount {
			hot++
		} else {
			hot = 0
		}
		s.LongestStreak = max(s.LongestStreak, run)
		s.LongestHotStreak = max(s.LongestHotStreak, hot)
	}
	return s
}

// Intensity buckets a day's count for heatmap display.
func Intensity(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 5:
		return 1
	case count <= 10:
		return 2
	case count <= 20:
		return 3
	default:
		return 4
	}
}
