package usecase

import (
	"context"

	"unimarket/internal/domain/entity"
)

// QuestionUsecase backs the support console's question queue.
type QuestionUsecase interface {
	// SubmitQuestion stores a new unanswered question from a user.
	SubmitQuestion(ctx context.Context, userEmail, question string) (*entity.Question, error)

	// ListUnanswered returns every question still waiting for an answer.
	ListUnanswered(ctx context.Context) ([]*entity.Question, error)

	// AnswerQuestion records an answer and removes the question from the
	// unanswered queue.
	AnswerQuestion(ctx context.Context, id, answer string) error
}
