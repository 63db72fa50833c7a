package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"food-analyzer/internal/meal"
)

func (s *Server) handleSaveMeal(c *gin.Context) {
	var m meal.Meal
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	m.UserID = currentUserID(c)

	if err := s.meals.SaveMeal(c.Request.Context(), &m); err != nil {
		if errors.Is(err, meal.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal saved successfully"})
}

func (s *Server) handleUserMeals(c *gin.Context) {
	meals, err := s.meals.UserMeals(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (s *Server) handleLogExercise(c *gin.Context) {
	var e meal.ExerciseLog
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	e.UserID = currentUserID(c)

	if err := s.meals.LogExercise(c.Request.Context(), &e); err != nil {
		if errors.Is(err, meal.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise logged"})
}

func (s *Server) handleLogWater(c *gin.Context) {
	var w meal.WaterLog
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	w.UserID = currentUserID(c)

	if err := s.meals.LogWater(c.Request.Context(), &w); err != nil {
		if errors.Is(err, meal.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Water logged"})
}

func (s *Server) handleLogWeight(c *gin.Context) {
	var w meal.WeightLog
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	w.UserID = currentUserID(c)

	if err := s.meals.LogWeight(c.Request.Context(), &w); err != nil {
		if errors.Is(err, meal.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Weight logged"})
}

func (s *Server) handleDashboard(c *gin.Context) {
	stats, err := s.meals.Dashboard(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
