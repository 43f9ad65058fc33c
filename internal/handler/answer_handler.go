package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizcraft/quizcraft-backend/internal/middleware"
	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/response"
	"github.com/quizcraft/quizcraft-backend/internal/service"
	"github.com/quizcraft/quizcraft-backend/internal/validator"
)

// AnswerHandler handles answer endpoints within an attempt.
type AnswerHandler struct {
	answerService *service.AnswerService
}

// NewAnswerHandler creates a new AnswerHandler.
func NewAnswerHandler(answerService *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// Submit godoc
// POST /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id/questions/:question_id/answer
// Writes the student's answer; a repeat write overwrites the first.
func (h *AnswerHandler) Submit(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, attemptID, questionID, ok := answerPath(c)
	if !ok {
		return
	}

	var req model.SubmitAnswerRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	answer, err := h.answerService.Submit(c.Request.Context(), attemptID, quizID, questionID, user.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message":   "Answer submitted successfully",
		"answer_id": answer.ID,
	})
}

// Update godoc
// PUT /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id/questions/:question_id/answer
func (h *AnswerHandler) Update(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, attemptID, questionID, ok := answerPath(c)
	if !ok {
		return
	}

	var req model.SubmitAnswerRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.answerService.Submit(c.Request.Context(), attemptID, quizID, questionID, user.ID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Answer updated successfully"})
}

// Get godoc
// GET /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id/questions/:question_id/answer
func (h *AnswerHandler) Get(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, attemptID, questionID, ok := answerPath(c)
	if !ok {
		return
	}

	answer, err := h.answerService.Get(c.Request.Context(), attemptID, quizID, questionID, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, answer)
}

// Delete godoc
// DELETE /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id/questions/:question_id/answer
func (h *AnswerHandler) Delete(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, attemptID, questionID, ok := answerPath(c)
	if !ok {
		return
	}

	if err := h.answerService.Delete(c.Request.Context(), attemptID, quizID, questionID, user.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}

// ListByAttempt godoc
// GET /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id/answers
func (h *AnswerHandler) ListByAttempt(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}
	attemptID, ok := pathID(c, "attempt_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Attempt not found")
		return
	}

	answers, err := h.answerService.ListByAttempt(c.Request.Context(), attemptID, quizID, user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, answers)
}

func answerPath(c *gin.Context) (quizID, attemptID, questionID int64, ok bool) {
	quizID, ok = pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return 0, 0, 0, false
	}
	attemptID, ok = pathID(c, "attempt_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Attempt not found")
		return 0, 0, 0, false
	}
	questionID, ok = pathID(c, "question_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question not found")
		return 0, 0, 0, false
	}
	return quizID, attemptID, questionID, true
}
