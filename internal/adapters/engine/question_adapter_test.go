package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickwise/pickwise-backend/internal/infrastructure/clients/engineapi"
	"github.com/pickwise/pickwise-backend/pkg/config"
	apperrors "github.com/pickwise/pickwise-backend/pkg/errors"
)

func newEngineClient(t *testing.T, handler http.HandlerFunc) *engineapi.Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := engineapi.NewClient(&config.EngineConfig{BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestQuestionAdapter_GenerateQuestions(t *testing.T) {
	t.Run("returns validated questions", func(t *testing.T) {
		client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/generate-questions", r.URL.Path)

			var payload map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "mechanical keyboard", payload["query"])
			assert.EqualValues(t, 3, payload["questionCount"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"questions": []map[string]interface{}{
					{"id": "q1", "text": "What switch type do you prefer?", "answers": []string{"Linear", "Tactile", "Clicky"}},
					{"id": "q2", "text": "What is your budget range?", "answers": []string{"Under $100", "$100-$200", "Over $200"}},
					{"id": "q3", "text": "What size layout do you want?", "answers": []string{"Full", "TKL", "60%"}},
				},
			})
		})

		adapter := NewQuestionAdapter(client)
		questions, err := adapter.GenerateQuestions(context.Background(), "mechanical keyboard", 3, 3)
		require.NoError(t, err)
		require.Len(t, questions, 3)
		assert.Equal(t, "q1", questions[0].ID)
		assert.Len(t, questions[0].Answers, 3)
	})

	t.Run("maps engine failure envelope", func(t *testing.T) {
		client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   "model unavailable",
			})
		})

		adapter := NewQuestionAdapter(client)
		questions, err := adapter.GenerateQuestions(context.Background(), "mechanical keyboard", 3, 3)
		require.Error(t, err)
		assert.Nil(t, questions)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeQuestionGeneration))
		assert.Contains(t, err.Error(), "model unavailable")
	})

	t.Run("rejects malformed questions", func(t *testing.T) {
		client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"questions": []map[string]interface{}{
					{"id": "q1", "text": "Hm?", "answers": []string{"Yes"}},
				},
			})
		})

		adapter := NewQuestionAdapter(client)
		questions, err := adapter.GenerateQuestions(context.Background(), "mechanical keyboard", 1, 2)
		require.Error(t, err)
		assert.Nil(t, questions)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeQuestionGeneration))
	})

	t.Run("rejects duplicate question ids", func(t *testing.T) {
		client := newEngineClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"questions": []map[string]interface{}{
					{"id": "q1", "text": "What is your budget?", "answers": []string{"Low", "High"}},
					{"id": "q1", "text": "How often will you use it?", "answers": []string{"Daily", "Weekly"}},
				},
			})
		})

		adapter := NewQuestionAdapter(client)
		_, err := adapter.GenerateQuestions(context.Background(), "mechanical keyboard", 2, 2)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeQuestionGeneration))
	})

	t.Run("maps transport errors", func(t *testing.T) {
		client, err := engineapi.NewClient(&config.EngineConfig{BaseURL: "http://127.0.0.1:1"})
		require.NoError(t, err)

		adapter := NewQuestionAdapter(client)
		_, err = adapter.GenerateQuestions(context.Background(), "mechanical keyboard", 3, 3)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeQuestionGeneration))
	})
}
