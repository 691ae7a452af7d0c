package models

// DateLayout is the calendar-date key format for daily statistics (UTC).
const DateLayout = "2006-01-02"

// DailyStatistic holds per-calendar-date counters for created and
// policy-blocked comments. One record per date, upserted on first touch.
type DailyStatistic struct {
	Date            string `json:"date"`
	CreatedComments int    `json:"created_comments"`
	BlockedComments int    `json:"blocked_comments"`
}
