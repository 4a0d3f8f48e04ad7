// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"unimarket/internal/domain/entity"
)

// ErrQuestionNotFound is returned when a question is not found.
var ErrQuestionNotFound = errors.New("question not found")

// QuestionRepository defines the interface for the admin console's question queue.
type QuestionRepository interface {
	// Create persists a new question with a nil answer.
	Create(ctx context.Context, question *entity.Question) error

	// FindUnanswered returns all questions whose answer field is null.
	FindUnanswered(ctx context.Context) ([]*entity.Question, error)

	// FindByID retrieves a question by its document key.
	// Returns ErrQuestionNotFound on absence.
	FindByID(ctx context.Context, id string) (*entity.Question, error)

	// Answer sets the answer field on an existing question.
	Answer(ctx context.Context, id, answer string) error
}
