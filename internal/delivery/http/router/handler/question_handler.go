package handler

import (
	"log/slog"
	"net/http"

	"unimarket/internal/delivery/http/middleware"
	"unimarket/internal/delivery/http/response"
	"unimarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// QuestionHandler backs the support console's question queue.
type QuestionHandler struct {
	uc     usecase.QuestionUsecase
	logger *slog.Logger
}

// NewQuestionHandler is the constructor for QuestionHandler, injected by Fx.
func NewQuestionHandler(uc usecase.QuestionUsecase, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitQuestionRequest struct {
	Question string `json:"question" validate:"required"`
}

// SubmitQuestion stores a new unanswered question from the current account.
func (h *QuestionHandler) SubmitQuestion(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req submitQuestionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid question input")
	}

	question, err := h.uc.SubmitQuestion(c.Request().Context(), email, req.Question)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, question, "Question submitted successfully")
}

// ListUnanswered returns every question still waiting for an answer.
func (h *QuestionHandler) ListUnanswered(c echo.Context) error {
	questions, err := h.uc.ListUnanswered(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, questions, "Questions retrieved successfully")
}

type answerQuestionRequest struct {
	Answer string `json:"answer"`
}

// AnswerQuestion records an answer and removes the question from the queue.
func (h *QuestionHandler) AnswerQuestion(c echo.Context) error {
	var req answerQuestionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid answer input")
	}

	if err := h.uc.AnswerQuestion(c.Request().Context(), c.Param("id"), req.Answer); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Question answered successfully")
}
