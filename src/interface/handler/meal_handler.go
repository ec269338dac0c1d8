package handler

import (
	"net/http"

	"mcnutrition/src/middleware"
	"mcnutrition/src/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MealHandler handles HTTP requests for saved meals. All endpoints
// require an authenticated identity.
type MealHandler struct {
	mealUsecase usecase.MealUsecase
	logger      *logrus.Logger
}

// NewMealHandler creates a new saved meal handler
func NewMealHandler(mealUsecase usecase.MealUsecase, logger *logrus.Logger) *MealHandler {
	return &MealHandler{
		mealUsecase: mealUsecase,
		logger:      logger,
	}
}

// ListMeals returns the caller's saved meals, newest first.
func (h *MealHandler) ListMeals(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	meals, err := h.mealUsecase.ListMeals(c.Request.Context(), identity.Key)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", identity.Key).Error("保存済みミールの一覧取得に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to list meals",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals, "total": len(meals)})
}

// GetMeal returns one saved meal owned by the caller.
func (h *MealHandler) GetMeal(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	mealID := c.Param("mealID")

	meal, err := h.mealUsecase.GetMeal(c.Request.Context(), identity.Key, mealID)
	if err != nil {
		status := http.StatusInternalServerError
		switch err {
		case usecase.ErrMealNotFound:
			status = http.StatusNotFound
		case usecase.ErrNotAuthorized:
			status = http.StatusForbidden
		default:
			h.logger.WithError(err).WithField("meal_id", mealID).Error("保存済みミールの取得に失敗")
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to get meal",
		})
		return
	}

	c.JSON(http.StatusOK, meal)
}

// DeleteMeal deletes one saved meal owned by the caller.
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)
	mealID := c.Param("mealID")

	if err := h.mealUsecase.DeleteMeal(c.Request.Context(), identity.Key, mealID); err != nil {
		status := http.StatusInternalServerError
		switch err {
		case usecase.ErrMealNotFound:
			status = http.StatusNotFound
		case usecase.ErrNotAuthorized:
			status = http.StatusForbidden
		default:
			h.logger.WithError(err).WithField("meal_id", mealID).Error("保存済みミールの削除に失敗")
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to delete meal",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted"})
}
