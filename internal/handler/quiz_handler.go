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

// QuizHandler handles quiz authoring and reads.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Create godoc
// POST /api/v1/users/:user_id/quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	user := middleware.Principal(c)

	var req model.CreateQuizRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message": "Quiz created successfully",
		"quiz_id": quiz.ID,
	})
}

// List godoc
// GET /api/v1/users/:user_id/quizzes
// Lists the teacher's own quizzes.
func (h *QuizHandler) List(c *gin.Context) {
	user := middleware.Principal(c)

	quizzes, err := h.quizService.ListByCreator(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, quizzes)
}

// Get godoc
// GET /api/v1/users/:user_id/quizzes/:quiz_id
// Teachers see their quiz with correct answers and attempt ids;
// students see a published quiz with answers stripped, sliced by the
// offset/limit query parameters.
func (h *QuizHandler) Get(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}

	var detail *model.QuizDetail
	var err error
	if user.Role == model.RoleTeacher {
		detail, err = h.quizService.GetForTeacher(c.Request.Context(), quizID, user.ID)
	} else {
		offset := queryInt(c, "offset", 0)
		limit := queryInt(c, "limit", 0)
		detail, err = h.quizService.GetForStudent(c.Request.Context(), quizID, offset, limit)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, detail)
}

// Update godoc
// PUT /api/v1/users/:user_id/quizzes/:quiz_id
func (h *QuizHandler) Update(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}

	var req model.UpdateQuizRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.quizService.Update(c.Request.Context(), quizID, user.ID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Quiz updated successfully"})
}

// Delete godoc
// DELETE /api/v1/users/:user_id/quizzes/:quiz_id
func (h *QuizHandler) Delete(c *gin.Context) {
	user := middleware.Principal(c)
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Quiz not found")
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), quizID, user.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}
