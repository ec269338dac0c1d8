package handler

import (
	"net/http"

	"mcnutrition/src/domain"
	"mcnutrition/src/middleware"
	"mcnutrition/src/planner"
	"mcnutrition/src/usecase"
	"mcnutrition/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PlannerHandler handles HTTP requests for the live meal planner.
// Every request resolves the caller's session through the manager, which
// runs the load precedence chain on first touch.
type PlannerHandler struct {
	manager     *planner.Manager
	mealUsecase usecase.MealUsecase
	validator   *validator.CustomValidator
	logger      *logrus.Logger
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(manager *planner.Manager, mealUsecase usecase.MealUsecase, cv *validator.CustomValidator, logger *logrus.Logger) *PlannerHandler {
	return &PlannerHandler{
		manager:     manager,
		mealUsecase: mealUsecase,
		validator:   cv,
		logger:      logger,
	}
}

// session resolves the caller's planner session. Identity presence is
// guaranteed upstream by RequireIdentity.
func (h *PlannerHandler) session(c *gin.Context) (*planner.Session, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponseDTO{
			Error: "Authentication or session key required",
		})
		return nil, false
	}
	return h.manager.Session(c.Request.Context(), identity, middleware.GetSessionKey(c)), true
}

// GetPlanner returns the current planner state.
func (h *PlannerHandler) GetPlanner(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.State())
}

// Toggle adds or removes one item, keyed by its listing ID.
func (h *PlannerHandler) Toggle(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req ToggleRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	selected := s.Toggle(req.ID, req.Item)
	c.JSON(http.StatusOK, ToggleResponseDTO{
		Selected: selected,
		Planner:  s.State(),
	})
}

// Remove deletes one entry. Unknown IDs are a no-op.
func (h *PlannerHandler) Remove(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req RemoveRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	s.Remove(req.ID)
	c.JSON(http.StatusOK, s.State())
}

// Clear empties the planner entries, keeping the meal name.
func (h *PlannerHandler) Clear(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	s.Clear()
	c.JSON(http.StatusOK, s.State())
}

// Rename sets the meal name. Blank input resets to the default name.
func (h *PlannerHandler) Rename(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req RenameRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	s.Rename(h.validator.SanitizeInput(req.Name))
	c.JSON(http.StatusOK, s.State())
}

// SaveMeal snapshots the planner into an immutable saved meal.
func (h *PlannerHandler) SaveMeal(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	meal, err := s.SaveMeal(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		switch err {
		case planner.ErrAuthRequired:
			status = http.StatusUnauthorized
		case planner.ErrNoEntries:
			status = http.StatusBadRequest
		default:
			h.logger.WithError(err).Error("ミールの保存に失敗")
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to save meal",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, meal)
}

// StageLogin stores the planner payload handed over before the identity
// provider redirect, keyed by the anonymous session key. The payload is
// applied on the first authenticated session touch.
func (h *PlannerHandler) StageLogin(c *gin.Context) {
	sessionKey := middleware.GetSessionKey(c)
	if sessionKey == "" {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error: "Session key required",
		})
		return
	}

	var state domain.PlannerState
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	h.manager.StageLogin(sessionKey, state)
	h.logger.WithField("session_key", sessionKey).Info("ログイン前のプランナーを退避しました")
	c.JSON(http.StatusAccepted, gin.H{"message": "Planner staged for login"})
}

// LoadMeal stages a saved meal as a full planner replacement and applies
// it immediately, returning the resulting planner state.
func (h *PlannerHandler) LoadMeal(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok || !identity.Authenticated {
		c.JSON(http.StatusUnauthorized, ErrorResponseDTO{
			Error: "Login required",
		})
		return
	}

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
			Error: "Failed to load meal",
		})
		return
	}

	h.manager.StageMealLoad(identity.Key, *meal)
	s := h.manager.Session(c.Request.Context(), identity, middleware.GetSessionKey(c))
	c.JSON(http.StatusOK, s.State())
}

// DeletePlanner clears the planner and removes the persisted record
// immediately, skipping the auto-save debounce.
func (h *PlannerHandler) DeletePlanner(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.ClearPersisted(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("プランナーの削除に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to clear planner",
		})
		return
	}

	c.JSON(http.StatusOK, s.State())
}
