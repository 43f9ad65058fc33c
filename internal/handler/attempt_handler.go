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

// AttemptHandler handles quiz attempt lifecycle endpoints.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// Create godoc
// POST /api/v1/users/:user_id/quizzes/:quiz_id/attempts
// Starts an attempt for the authenticated student.
func (h *AttemptHandler) Create(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}

	attempt, err := h.attemptService.Create(c.Request.Context(), quizID, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message":    "Attempt started successfully",
		"attempt_id": attempt.ID,
	})
}

// List godoc
// GET /api/v1/users/:user_id/quizzes/:quiz_id/attempts
// Teachers see every attempt of their quiz; students see their own.
func (h *AttemptHandler) List(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}

	attempts, err := h.attemptService.List(c.Request.Context(), quizID, user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, attempts)
}

// Get godoc
// GET /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id
func (h *AttemptHandler) Get(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, attemptID, ok := attemptPath(c)
	if !ok {
		return
	}

	attempt, err := h.attemptService.Get(c.Request.Context(), attemptID, quizID, user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, attempt)
}

// Update godoc
// PUT /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id
// Administrative edit while the attempt is open. Teachers may set the
// score.
func (h *AttemptHandler) Update(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, attemptID, ok := attemptPath(c)
	if !ok {
		return
	}

	var req model.UpdateAttemptRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.attemptService.Update(c.Request.Context(), attemptID, quizID, user, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Attempt updated successfully"})
}

// Submit godoc
// POST /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id/submit
// Grades the attempt, closes it and returns the total score.
func (h *AttemptHandler) Submit(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, attemptID, ok := attemptPath(c)
	if !ok {
		return
	}

	var req model.SubmitAttemptRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	score, err := h.attemptService.Submit(c.Request.Context(), attemptID, quizID, user, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Attempt submitted successfully",
		"Score":   score,
	})
}

// Evaluate godoc
// GET /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id/evaluate
// Re-grades without closing the attempt.
func (h *AttemptHandler) Evaluate(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, attemptID, ok := attemptPath(c)
	if !ok {
		return
	}

	total, err := h.attemptService.Evaluate(c.Request.Context(), attemptID, quizID, user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"total_score": total})
}

// Delete godoc
// DELETE /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id
func (h *AttemptHandler) Delete(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, attemptID, ok := attemptPath(c)
	if !ok {
		return
	}

	if err := h.attemptService.Delete(c.Request.Context(), attemptID, quizID, user.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Attempt deleted successfully"})
}

// Questions godoc
// GET /api/v1/users/:user_id/quizzes/:quiz_id/attempts/:attempt_id/questions
// The quiz's questions for the attempting student, without answers.
func (h *AttemptHandler) Questions(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, attemptID, ok := attemptPath(c)
	if !ok {
		return
	}

	questions, err := h.attemptService.Questions(c.Request.Context(), attemptID, quizID, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, questions)
}

func attemptPath(c *gin.Context) (quizID, attemptID int64, ok bool) {
	quizID, ok = pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return 0, 0, false
	}
	attemptID, ok = pathID(c, "attempt_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Attempt not found")
		return 0, 0, false
	}
	return quizID, attemptID, true
}
