package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	session := &Session{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, session.Expired(now))
	assert.True(t, session.Expired(now.Add(2*time.Hour)))
}

func TestSession_AnswerProgress(t *testing.T) {
	session := &Session{
		Questions: []Question{
			{ID: "q1", Text: "What is your budget range?", Answers: []string{"Low", "High"}},
			{ID: "q2", Text: "How often will you use it?", Answers: []string{"Daily", "Rarely"}},
			{ID: "q3", Text: "What matters most to you?", Answers: []string{"Price", "Quality"}},
		},
		Answers: map[string]string{"q2": "Daily"},
	}

	assert.True(t, session.HasQuestion("q1"))
	assert.False(t, session.HasQuestion("q9"))

	// unanswered ids come back in question order
	assert.Equal(t, []string{"q1", "q3"}, session.Unanswered())
	assert.False(t, session.Complete())

	session.Answers["q1"] = "Low"
	session.Answers["q3"] = "Price"
	assert.Empty(t, session.Unanswered())
	assert.True(t, session.Complete())
}
