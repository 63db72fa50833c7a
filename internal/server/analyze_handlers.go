package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"food-analyzer/internal/analysis"
	"food-analyzer/internal/imaging"
	"food-analyzer/internal/shared"
)

func (s *Server) handleAnalyze(c *gin.Context) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image part in the request"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, imaging.MaxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	if len(data) > imaging.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	userID := c.PostForm("user_id")
	if userID == "" {
		userID = "guest"
	}
	customPrompt := c.PostForm("custom_prompt")

	result, err := s.analyzer.Analyze(c.Request.Context(), data, userID, customPrompt)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.recordStages(result.Stages)
	c.JSON(http.StatusOK, result)
}

type recalculateRequest struct {
	Ingredients string `json:"ingredients"`
}

func (s *Server) handleRecalculate(c *gin.Context) {
	var req recalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	block, meta, err := s.analyzer.Recalculate(c.Request.Context(), req.Ingredients)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyIngredients) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ingredients"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.recordStages([]shared.StageMeta{meta})
	c.JSON(http.StatusOK, gin.H{"nutrition_info": block})
}

type clipRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleClipRecipe(c *gin.Context) {
	var req clipRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url"})
		return
	}

	clipped, err := s.clipper.ClipURL(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	block, meta, err := s.analyzer.Recalculate(c.Request.Context(), clipped.Ingredients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.recordStages([]shared.StageMeta{meta})

	c.JSON(http.StatusOK, gin.H{
		"title":          clipped.Title,
		"ingredients":    clipped.Ingredients,
		"source_url":     clipped.SourceURL,
		"nutrition_info": block,
	})
}

// recordStages persists stage metadata without holding up the response.
func (s *Server) recordStages(metas []shared.StageMeta) {
	if s.metrics == nil || len(metas) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.metrics.RecordStages(ctx, metas); err != nil {
			log.Printf("⚠️ Failed to record stage metrics: %v", err)
		}
	}()
}
