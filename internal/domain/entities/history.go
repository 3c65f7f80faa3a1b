package entities

import "time"

// SearchHistoryEntry records one search attempt (success or failure) for a
// user. Failed attempts carry a single failure placeholder result.
type SearchHistoryEntry struct {
	ID        string            `json:"id" db:"id"`
	UserID    string            `json:"user_id" db:"user_id"`
	Query     string            `json:"query" db:"query"`
	Answers   map[string]string `json:"answers" db:"answers"`
	Questions []Question        `json:"questions" db:"questions"`
	Results   []SearchResult    `json:"search_results" db:"search_results"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
}
