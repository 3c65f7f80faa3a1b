package entities

// SearchRequest is the outbound payload for one search dispatch. It carries
// the original query, the collected answers, and the full question objects so
// the engine can interpret answer keys.
type SearchRequest struct {
	Query       string            `json:"query"`
	Answers     map[string]string `json:"answers"`
	Questions   []Question        `json:"questions"`
	UserID      string            `json:"user_id,omitempty"`
	UserProfile *SearchProfile    `json:"user_profile,omitempty"`
}

// SearchProfile is the profile shape the engine accepts on a search request.
// It carries only the demographic attributes, not the storage timestamps.
type SearchProfile struct {
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	LivesInUS bool   `json:"lives_in_us"`
}

// SearchResult is a single ranked recommendation from the search engine.
type SearchResult struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	URL            string   `json:"url,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	Relevance      float64  `json:"relevance,omitempty"`
	WhyMatches     string   `json:"why_matches,omitempty"`
	AdditionalInfo string   `json:"additional_info,omitempty"`
	Highlights     []string `json:"highlights,omitempty"`
}

// FailedSearchTitle is the placeholder title recorded for failed dispatches.
const FailedSearchTitle = "Search Failed"

// FailurePlaceholder builds the history placeholder for a failed search so
// the record of what was tried is never lost.
func FailurePlaceholder(message string) SearchResult {
	return SearchResult{
		Title:       FailedSearchTitle,
		Description: message,
	}
}
