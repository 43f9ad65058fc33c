package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizcraft/quizcraft-backend/internal/config"
	"github.com/quizcraft/quizcraft-backend/internal/handler"
	"github.com/quizcraft/quizcraft-backend/internal/middleware"
	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/response"
	"github.com/quizcraft/quizcraft-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Quiz     *handler.QuizHandler
	Question *handler.QuestionHandler
	Bank     *handler.BankHandler
	Attempt  *handler.AttemptHandler
	Answer   *handler.AnswerHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Auth group (public, rate limited).
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/verify", handlers.Auth.Verify)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/request-reset", handlers.Auth.RequestReset)
		auth.POST("/reset-password", handlers.Auth.ResetPassword)
	}

	// Everything below is scoped to the authenticated user named in the
	// path; RequireAuth rejects any mismatch between token and :user_id.
	users := router.Group("/api/v1/users/:user_id")
	users.Use(middleware.RequireAuth(authService))
	{
		users.GET("", handlers.User.GetProfile)
		users.PUT("", handlers.User.UpdateProfile)
		users.DELETE("", handlers.User.DeleteProfile)

		teacherOnly := middleware.RequireRole(model.RoleTeacher)
		studentOnly := middleware.RequireRole(model.RoleStudent)

		quizzes := users.Group("/quizzes")
		{
			quizzes.POST("", teacherOnly, handlers.Quiz.Create)
			quizzes.GET("", teacherOnly, handlers.Quiz.List)
			quizzes.GET("/:quiz_id", handlers.Quiz.Get)
			quizzes.PUT("/:quiz_id", teacherOnly, handlers.Quiz.Update)
			quizzes.DELETE("/:quiz_id", teacherOnly, handlers.Quiz.Delete)

			questions := quizzes.Group("/:quiz_id/questions", teacherOnly)
			{
				questions.POST("", handlers.Question.Create)
				questions.GET("", handlers.Question.List)
				questions.GET("/:question_id", handlers.Question.Get)
				questions.PUT("/:question_id", handlers.Question.Update)
				questions.DELETE("/:question_id", handlers.Question.Delete)
			}

			attempts := quizzes.Group("/:quiz_id/attempts")
			{
				attempts.POST("", studentOnly, handlers.Attempt.Create)
				attempts.GET("", handlers.Attempt.List)
				attempts.GET("/:attempt_id", handlers.Attempt.Get)
				attempts.PUT("/:attempt_id", handlers.Attempt.Update)
				attempts.DELETE("/:attempt_id", studentOnly, handlers.Attempt.Delete)
				attempts.POST("/:attempt_id/submit", studentOnly, handlers.Attempt.Submit)
				attempts.GET("/:attempt_id/evaluate", handlers.Attempt.Evaluate)
				attempts.GET("/:attempt_id/questions", studentOnly, handlers.Attempt.Questions)
				attempts.GET("/:attempt_id/answers", handlers.Answer.ListByAttempt)

				answer := attempts.Group("/:attempt_id/questions/:question_id/answer", studentOnly)
				{
					answer.POST("", handlers.Answer.Submit)
					answer.GET("", handlers.Answer.Get)
					answer.PUT("", handlers.Answer.Update)
					answer.DELETE("", handlers.Answer.Delete)
				}
			}
		}

		banks := users.Group("/question_bank", teacherOnly)
		{
			banks.POST("", handlers.Bank.Create)
			banks.GET("", handlers.Bank.List)
			banks.GET("/:bank_id", handlers.Bank.Get)
			banks.PUT("/:bank_id", handlers.Bank.Update)
			banks.DELETE("/:bank_id", handlers.Bank.Delete)
			banks.POST("/:bank_id/questions", handlers.Bank.CreateQuestion)
			banks.GET("/:bank_id/questions", handlers.Bank.ListQuestions)
			banks.DELETE("/:bank_id/questions/:question_id", handlers.Bank.DeleteQuestion)
		}
	}

	return router
}
