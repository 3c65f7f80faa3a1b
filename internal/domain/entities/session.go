package entities

import "time"

// Session is the persisted record of one question/answer/search cycle.
// The answer map is the only mutable field besides UpdatedAt; every key in it
// must reference a question identifier in Questions.
type Session struct {
	ID        string            `json:"id" db:"id"`
	UserID    string            `json:"user_id" db:"user_id"`
	Query     string            `json:"query" db:"query"`
	Questions []Question        `json:"questions" db:"questions"`
	Answers   map[string]string `json:"answers" db:"answers"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
	ExpiresAt time.Time         `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the session's TTL has elapsed at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// HasQuestion reports whether id names a question in this session.
func (s *Session) HasQuestion(id string) bool {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return true
		}
	}
	return false
}

// Unanswered returns the identifiers of questions without a collected answer,
// in question order.
func (s *Session) Unanswered() []string {
	var missing []string
	for i := range s.Questions {
		if _, ok := s.Answers[s.Questions[i].ID]; !ok {
			missing = append(missing, s.Questions[i].ID)
		}
	}
	return missing
}

// Complete reports whether every question has a collected answer.
func (s *Session) Complete() bool {
	return len(s.Unanswered()) == 0
}
