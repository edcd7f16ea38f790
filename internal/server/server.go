package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/deepmodak79/AskMate/internal/database"
	"github.com/deepmodak79/AskMate/internal/handlers"
	"github.com/deepmodak79/AskMate/internal/metrics"
	"github.com/deepmodak79/AskMate/internal/middleware"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
	metrics *metrics.Metrics
	log     *logrus.Logger
}

// NewServer creates and configures a new server
func NewServer(log *logrus.Logger) *http.Server {
	// Fail fast if the database is unreachable before the ORM comes up.
	boot, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer boot.Close()

	db := database.New()
	handler := handlers.NewHandler(db.GetDB(), log)

	newServer := &Server{
		db:      db,
		handler: handler,
		metrics: metrics.New(),
		log:     log,
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.WithField("port", port).Info("server starting")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.Use(s.metrics.Middleware())

	// Health and metrics endpoints
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Question routes (public reads)
		api.GET("/questions", s.handler.Question.GetQuestions)
		api.GET("/questions/:id", s.handler.Question.GetQuestion)
		api.GET("/questions/:id/answers", s.handler.Answer.GetAnswersForQuestion)
		api.GET("/questions/:id/comments", s.handler.Comment.GetQuestionComments)

		// Answer routes (public reads)
		api.GET("/answers/:id", s.handler.Answer.GetAnswer)
		api.GET("/answers/:id/comments", s.handler.Comment.GetAnswerComments)

		// User routes (public reads)
		api.GET("/users/:id", s.handler.User.GetUserProfile)
		api.GET("/users/:id/reputation", s.handler.User.GetReputationHistory)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth protected routes
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.GET("/me/notifications", s.handler.User.GetMyNotifications)
			protected.POST("/me/notifications/:id/read", s.handler.User.MarkNotificationRead)

			// Question protected routes
			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.POST("/questions/:id/vote", s.handler.Question.VoteQuestion)
			protected.POST("/questions/:id/answers", s.handler.Answer.CreateAnswer)
			protected.POST("/questions/:id/comments", s.handler.Comment.CreateQuestionComment)

			// Moderation
			protected.POST("/questions/:id/close", s.handler.Question.CloseQuestion)
			protected.POST("/questions/:id/reopen", s.handler.Question.ReopenQuestion)
			protected.POST("/questions/:id/lock", s.handler.Question.LockQuestion)
			protected.POST("/questions/:id/unlock", s.handler.Question.UnlockQuestion)
			protected.POST("/questions/:id/duplicate", s.handler.Question.MarkDuplicate)

			// Answer protected routes
			protected.POST("/answers/:id/vote", s.handler.Answer.VoteAnswer)
			protected.POST("/answers/:id/accept", s.handler.Answer.AcceptAnswer)
			protected.POST("/answers/:id/comments", s.handler.Comment.CreateAnswerComment)

			// Comment protected routes
			protected.POST("/comments/:id/vote", s.handler.Comment.VoteComment)
		}
	}

	return r
}
