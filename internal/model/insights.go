package model

import "time"

// MoodPoint is one entry's mood at the time it was written.
type MoodPoint struct {
	Date time.Time `json:"date"`
	Mood string    `json:"mood"`
}

// ThemeCount is one bucket of the theme cloud.
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// HistoricalInsights aggregates mood history and theme frequency for a user.
type HistoricalInsights struct {
	DaysMood    int          `json:"days_mood"`
	DaysThemes  int          `json:"days_themes"`
	MoodHistory []MoodPoint  `json:"mood_history"`
	ThemeCloud  []ThemeCount `json:"theme_cloud"`
}

// UserDataExport bundles everything stored for a user.
type UserDataExport struct {
	UserInfo       User           `json:"user_info"`
	JournalEntries []JournalEntry `json:"journal_entries"`
	Articles       []Article      `json:"articles"`
}
