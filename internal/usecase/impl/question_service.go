package impl

import (
	"context"
	"log/slog"

	"unimarket/internal/domain/entity"
	domainerrors "unimarket/internal/domain/errors"
	"unimarket/internal/domain/repository"
	"unimarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// questionService implements the QuestionUsecase interface.
type questionService struct {
	questionRepo repository.QuestionRepository
	logger       *slog.Logger
}

// QuestionServiceParams holds dependencies for QuestionService, injected by Fx.
type QuestionServiceParams struct {
	fx.In

	QuestionRepo repository.QuestionRepository
	Logger       *slog.Logger
}

// NewQuestionService is the constructor for questionService.
func NewQuestionService(params QuestionServiceParams) usecase.QuestionUsecase {
	return &questionService{
		questionRepo: params.QuestionRepo,
		logger:       params.Logger,
	}
}

// SubmitQuestion stores a new unanswered question.
func (srv *questionService) SubmitQuestion(ctx context.Context, userEmail, question string) (*entity.Question, error) {
	if question == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("question is required")
	}

	q := &entity.Question{
		ID:       uuid.NewString(),
		UserID:   userEmail,
		Question: question,
	}

	if err := srv.questionRepo.Create(ctx, q); err != nil {
		return nil, errors.Wrap(err, "failed to store question")
	}

	return q, nil
}

// ListUnanswered returns every question still waiting for an answer.
func (srv *questionService) ListUnanswered(ctx context.Context) ([]*entity.Question, error) {
	questions, err := srv.questionRepo.FindUnanswered(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list unanswered questions")
	}

	return questions, nil
}

// AnswerQuestion records an answer on an existing question.
func (srv *questionService) AnswerQuestion(ctx context.Context, id, answer string) error {
	if answer == "" {
		return domainerrors.ErrAnswerRequired
	}

	if err := srv.questionRepo.Answer(ctx, id, answer); err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return domainerrors.ErrQuestionNotFound
		}

		return errors.Wrap(err, "failed to record answer")
	}

	return nil
}
