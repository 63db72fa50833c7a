// Package server is the HTTP layer: a gin router over the analyzer, auth,
// meal and recipe services, mirroring the routes the mobile client calls.
package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"food-analyzer/internal/analysis"
	"food-analyzer/internal/auth"
	"food-analyzer/internal/meal"
	"food-analyzer/internal/metrics"
	"food-analyzer/internal/recipe"
	"food-analyzer/internal/shared"
)

// Analyzer is the pipeline surface the handlers call.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, userID, customPrompt string) (*analysis.Result, error)
	Recalculate(ctx context.Context, ingredientsText string) (string, shared.StageMeta, error)
}

// Clipper extracts an ingredient block from a recipe URL.
type Clipper interface {
	ClipURL(ctx context.Context, url string) (*recipe.ClippedRecipe, error)
}

// Server bundles the services behind the HTTP routes.
type Server struct {
	analyzer Analyzer
	authSvc  *auth.Service
	tokens   *auth.TokenManager
	meals    *meal.Service
	clipper  Clipper
	metrics  *metrics.Store // may be nil
}

func NewServer(analyzer Analyzer, authSvc *auth.Service, tokens *auth.TokenManager, meals *meal.Service, clipper Clipper, store *metrics.Store) *Server {
	return &Server{
		analyzer: analyzer,
		authSvc:  authSvc,
		tokens:   tokens,
		meals:    meals,
		clipper:  clipper,
		metrics:  store,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Food Analyzer Backend is Running"})
	})

	r.POST("/register", s.handleRegister)
	r.POST("/login", s.handleLogin)

	r.POST("/analyze", s.handleAnalyze)
	r.POST("/recalculate-nutrition", s.handleRecalculate)
	r.POST("/clip-recipe", s.handleClipRecipe)

	protected := r.Group("/", AuthRequired(s.tokens))
	{
		protected.POST("/save-profile", s.handleSaveProfile)
		protected.GET("/get-profile", s.handleGetProfile)
		protected.POST("/save-meal", s.handleSaveMeal)
		protected.GET("/user-meals", s.handleUserMeals)
		protected.POST("/log-exercise", s.handleLogExercise)
		protected.POST("/log-water", s.handleLogWater)
		protected.POST("/log-weight", s.handleLogWeight)
		protected.GET("/dashboard", s.handleDashboard)
	}

	return r
}
