package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pickwise/pickwise-backend/internal/domain/entities"
)

type mockQuestionProvider struct {
	mock.Mock
}

func (m *mockQuestionProvider) GenerateQuestions(ctx context.Context, query string, questionCount, answerCount int) ([]entities.Question, error) {
	args := m.Called(ctx, query, questionCount, answerCount)
	if qs, ok := args.Get(0).([]entities.Question); ok {
		return qs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSearchProvider struct {
	mock.Mock
}

func (m *mockSearchProvider) Search(ctx context.Context, req *entities.SearchRequest) ([]entities.SearchResult, error) {
	args := m.Called(ctx, req)
	if rs, ok := args.Get(0).([]entities.SearchResult); ok {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockIdentityProvider struct {
	mock.Mock
}

func (m *mockIdentityProvider) VerifyToken(ctx context.Context, token string) (*entities.UserIdentity, error) {
	args := m.Called(ctx, token)
	if id, ok := args.Get(0).(*entities.UserIdentity); ok {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *entities.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*entities.Session, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*entities.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionRepo) UpdateAnswers(ctx context.Context, id string, answers map[string]string) error {
	return m.Called(ctx, id, answers).Error(0)
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) AppendWithCap(ctx context.Context, entry *entities.SearchHistoryEntry, cap int) error {
	return m.Called(ctx, entry, cap).Error(0)
}

func (m *mockHistoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SearchHistoryEntry, error) {
	args := m.Called(ctx, userID, limit)
	if es, ok := args.Get(0).([]*entities.SearchHistoryEntry); ok {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*entities.UserProfile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*entities.UserProfile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) Upsert(ctx context.Context, profile *entities.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}
