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

// QuestionHandler handles question authoring under quizzes.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Create godoc
// POST /api/v1/users/:user_id/quizzes/:quiz_id/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}

	var req model.CreateQuestionRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	question, err := h.questionService.CreateForQuiz(c.Request.Context(), quizID, user.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message":     "Question created successfully",
		"question_id": question.ID,
	})
}

// List godoc
// GET /api/v1/users/:user_id/quizzes/:quiz_id/questions
func (h *QuestionHandler) List(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}

	questions, err := h.questionService.ListForQuiz(c.Request.Context(), quizID, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, questions)
}

// Get godoc
// GET /api/v1/users/:user_id/quizzes/:quiz_id/questions/:question_id
func (h *QuestionHandler) Get(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}
	questionID, ok := pathID(c, "question_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question not found")
		return
	}

	question, err := h.questionService.GetForQuiz(c.Request.Context(), quizID, questionID, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, question)
}

// Update godoc
// PUT /api/v1/users/:user_id/quizzes/:quiz_id/questions/:question_id
func (h *QuestionHandler) Update(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}
	questionID, ok := pathID(c, "question_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question not found")
		return
	}

	var req model.UpdateQuestionRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.questionService.UpdateForQuiz(c.Request.Context(), quizID, questionID, user.ID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Question updated successfully"})
}

// Delete godoc
// DELETE /api/v1/users/:user_id/quizzes/:quiz_id/questions/:question_id
func (h *QuestionHandler) Delete(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}
	questionID, ok := pathID(c, "question_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question not found")
		return
	}

	if err := h.questionService.DeleteForQuiz(c.Request.Context(), quizID, questionID, user.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
