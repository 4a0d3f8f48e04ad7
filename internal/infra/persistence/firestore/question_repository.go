package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
)

// questionRepository implements repository.QuestionRepository on the
// Questions collection.
type questionRepository struct {
	client *firestore.Client
}

// NewQuestionRepository is the constructor for questionRepository.
func NewQuestionRepository(client *firestore.Client) repository.QuestionRepository {
	return &questionRepository{client: client}
}

// Create persists a new question. The answer field starts as an explicit
// null so the unanswered query can match on equality.
func (r *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	doc := map[string]any{
		"userId":    question.UserID,
		"question":  question.Question,
		"answer":    nil,
		"createdAt": firestore.ServerTimestamp,
	}

	if _, err := r.client.Collection(questionsCollection).Doc(question.ID).Set(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to create question")
	}

	return nil
}

// FindUnanswered returns every question whose answer is still null.
func (r *questionRepository) FindUnanswered(ctx context.Context) ([]*entity.Question, error) {
	snaps, err := r.client.Collection(questionsCollection).
		Where("answer", "==", nil).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list unanswered questions")
	}

	questions := make([]*entity.Question, 0, len(snaps))
	for _, snap := range snaps {
		questions = append(questions, decodeQuestion(snap))
	}

	return questions, nil
}

func (r *questionRepository) FindByID(ctx context.Context, id string) (*entity.Question, error) {
	snap, err := r.client.Collection(questionsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrQuestionNotFound
		}

		return nil, errors.Wrap(err, "failed to get question")
	}

	return decodeQuestion(snap), nil
}

func (r *questionRepository) Answer(ctx context.Context, id, answer string) error {
	updates := []firestore.Update{{Path: "answer", Value: answer}}
	if _, err := r.client.Collection(questionsCollection).Doc(id).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return repository.ErrQuestionNotFound
		}

		return errors.Wrap(err, "failed to answer question")
	}

	return nil
}

func decodeQuestion(snap *firestore.DocumentSnapshot) *entity.Question {
	data := snap.Data()

	question := &entity.Question{
		ID:        snap.Ref.ID,
		UserID:    docString(data, "userId"),
		Question:  docString(data, "question"),
		CreatedAt: docTime(data, "createdAt"),
	}
	if answer, ok := data["answer"].(string); ok {
		question.Answer = &answer
	}

	return question
}
