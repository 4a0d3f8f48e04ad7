package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"unimarket/internal/domain/entity"
	domainerrors "unimarket/internal/domain/errors"
	"unimarket/internal/domain/repository"
	mockRepo "unimarket/internal/mocks/repository"
)

func createTestQuestionService(t *testing.T) (*mockRepo.MockQuestionRepository, *questionService) {
	t.Helper()
	repo := new(mockRepo.MockQuestionRepository)
	svc := NewQuestionService(QuestionServiceParams{
		QuestionRepo: repo,
		Logger:       slog.Default(),
	}).(*questionService)

	return repo, svc
}

func TestQuestionService_SubmitQuestion(t *testing.T) {
	repo, svc := createTestQuestionService(t)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(q *entity.Question) bool {
		return q.UserID == "alice@uni.edu" && q.Question == "Is the lamp still available?" && q.Answer == nil
	})).Return(nil)

	q, err := svc.SubmitQuestion(ctx, "alice@uni.edu", "Is the lamp still available?")
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.False(t, q.Answered())
}

func TestQuestionService_SubmitQuestion_EmptyText(t *testing.T) {
	_, svc := createTestQuestionService(t)

	_, err := svc.SubmitQuestion(context.Background(), "alice@uni.edu", "")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestQuestionService_ListUnanswered(t *testing.T) {
	repo, svc := createTestQuestionService(t)
	ctx := context.Background()

	queue := []*entity.Question{{ID: "q-1", Question: "Where do we meet?"}}
	repo.On("FindUnanswered", ctx).Return(queue, nil)

	got, err := svc.ListUnanswered(ctx)
	require.NoError(t, err)
	assert.Equal(t, queue, got)
}

func TestQuestionService_AnswerQuestion(t *testing.T) {
	repo, svc := createTestQuestionService(t)
	ctx := context.Background()

	repo.On("Answer", ctx, "q-1", "Main library entrance").Return(nil)

	require.NoError(t, svc.AnswerQuestion(ctx, "q-1", "Main library entrance"))
}

func TestQuestionService_AnswerQuestion_MissingAnswer(t *testing.T) {
	repo, svc := createTestQuestionService(t)

	err := svc.AnswerQuestion(context.Background(), "q-1", "")
	assert.ErrorIs(t, err, domainerrors.ErrAnswerRequired)

	repo.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuestionService_AnswerQuestion_NotFound(t *testing.T) {
	repo, svc := createTestQuestionService(t)
	ctx := context.Background()

	repo.On("Answer", ctx, "missing", "hello").
		Return(repository.ErrQuestionNotFound)

	err := svc.AnswerQuestion(ctx, "missing", "hello")
	assert.ErrorIs(t, err, domainerrors.ErrQuestionNotFound)
}
