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

// BankHandler handles question bank endpoints.
type BankHandler struct {
	bankService     *service.BankService
	questionService *service.QuestionService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService *service.BankService, questionService *service.QuestionService) *BankHandler {
	return &BankHandler{bankService: bankService, questionService: questionService}
}

// Create godoc
// POST /api/v1/users/:user_id/question_bank
func (h *BankHandler) Create(c *gin.Context) {
	user := middleware.Principal(c)

	var req model.CreateBankRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	bank, err := h.bankService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message": "Question bank created successfully",
		"bank_id": bank.ID,
	})
}

// List godoc
// GET /api/v1/users/:user_id/question_bank
func (h *BankHandler) List(c *gin.Context) {
	user := middleware.Principal(c)

	banks, err := h.bankService.List(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, banks)
}

// Get godoc
// GET /api/v1/users/:user_id/question_bank/:bank_id
func (h *BankHandler) Get(c *gin.Context) {
	user := middleware.Principal(c)
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question bank not found")
		return
	}

	bank, err := h.bankService.Get(c.Request.Context(), bankID, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, bank)
}

// Update godoc
// PUT /api/v1/users/:user_id/question_bank/:bank_id
func (h *BankHandler) Update(c *gin.Context) {
	user := middleware.Principal(c)
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question bank not found")
		return
	}

	var req model.UpdateBankRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.bankService.Update(c.Request.Context(), bankID, user.ID, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Question bank updated successfully"})
}

// Delete godoc
// DELETE /api/v1/users/:user_id/question_bank/:bank_id
func (h *BankHandler) Delete(c *gin.Context) {
	user := middleware.Principal(c)
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question bank not found")
		return
	}

	if err := h.bankService.Delete(c.Request.Context(), bankID, user.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Question bank deleted successfully"})
}

// CreateQuestion godoc
// POST /api/v1/users/:user_id/question_bank/:bank_id/questions
func (h *BankHandler) CreateQuestion(c *gin.Context) {
	user := middleware.Principal(c)
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question bank not found")
		return
	}

	var req model.CreateBankQuestionRequest
	if msg := validator.Bind(c, &req); msg != "" {
		response.Detail(c, http.StatusBadRequest, msg)
		return
	}

	question, err := h.questionService.CreateForBank(c.Request.Context(), bankID, user.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message":     "Question created successfully",
		"question_id": question.ID,
	})
}

// ListQuestions godoc
// GET /api/v1/users/:user_id/question_bank/:bank_id/questions
func (h *BankHandler) ListQuestions(c *gin.Context) {
	user := middleware.Principal(c)
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question bank not found")
		return
	}

	questions, err := h.questionService.ListForBank(c.Request.Context(), bankID, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, questions)
}

// DeleteQuestion godoc
// DELETE /api/v1/users/:user_id/question_bank/:bank_id/questions/:question_id
func (h *BankHandler) DeleteQuestion(c *gin.Context) {
	user := middleware.Principal(c)
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question bank not found")
		return
	}
	questionID, ok := pathID(c, "question_id")
	if !ok {
		response.Detail(c, http.StatusNotFound, "Question not found")
		return
	}

	if err := h.questionService.DeleteForBank(c.Request.Context(), bankID, questionID, user.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
