package handler

import (
	"net/http"

	"mcnutrition/src/domain"
	"mcnutrition/src/filter"
	"mcnutrition/src/listing"
	"mcnutrition/src/usecase"
	"mcnutrition/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MenuHandler handles HTTP requests for the public menu view and the
// admin catalog CRUD.
type MenuHandler struct {
	menuUsecase usecase.MenuUsecase
	validator   *validator.CustomValidator
	logger      *logrus.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuUsecase usecase.MenuUsecase, cv *validator.CustomValidator, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		menuUsecase: menuUsecase,
		validator:   cv,
		logger:      logger,
	}
}

// GetMenu computes the public menu view: the full catalog run through the
// category, nutritional range and search filters, grouped by category.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	var query MenuQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid query parameters",
			Message: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid query parameters",
			Message: err.Error(),
		})
		return
	}

	// カタログ全件を挿入順で取得する。リスティングIDはこの順序に依存する
	items, err := h.menuUsecase.ListMenuItems(c.Request.Context(), domain.MenuFilter{})
	if err != nil {
		h.logger.WithError(err).Error("メニューカタログの取得に失敗")
		c.JSON(http.StatusInternalServerError, ErrorResponseDTO{
			Error: "Failed to load menu",
		})
		return
	}

	engine := filter.NewEngine(items)
	if query.Category != "" {
		engine.SetCategory(query.Category)
	}
	if query.Criterion != "" {
		crit, ok := filter.CriterionByKey(query.Criterion)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponseDTO{
				Error:   "Invalid query parameters",
				Message: "unknown filter criterion: " + query.Criterion,
			})
			return
		}
		min, max := crit.DefaultMin, crit.DefaultMax
		if query.Min != nil {
			min = *query.Min
		}
		if query.Max != nil {
			max = *query.Max
		}
		if err := engine.SetCriterion(query.Criterion, min, max); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponseDTO{
				Error:   "Invalid query parameters",
				Message: err.Error(),
			})
			return
		}
	}
	if query.Search != "" {
		engine.SetSearchTerm(query.Search)
	}

	c.JSON(http.StatusOK, h.toMenuResponseDTO(engine.Compute()))
}

// ListCriteria returns the closed registry of nutritional filters.
func (h *MenuHandler) ListCriteria(c *gin.Context) {
	criteria := make([]CriterionDTO, 0, len(filter.Criteria))
	for _, crit := range filter.Criteria {
		criteria = append(criteria, CriterionDTO{
			Key:        crit.Key,
			Name:       crit.Name,
			Unit:       crit.Unit,
			Min:        crit.Min,
			Max:        crit.Max,
			DefaultMin: crit.DefaultMin,
			DefaultMax: crit.DefaultMax,
		})
	}
	c.JSON(http.StatusOK, gin.H{"criteria": criteria})
}

// SearchMenu searches the catalog by item name.
func (h *MenuHandler) SearchMenu(c *gin.Context) {
	query := c.Query("q")
	limit := 10
	if v := c.Query("limit"); v != "" {
		parsed, err := h.validator.ValidateID(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponseDTO{
				Error:   "Invalid limit",
				Message: err.Error(),
			})
			return
		}
		limit = parsed
	}

	items, err := h.menuUsecase.SearchMenuItems(c.Request.Context(), query, limit)
	if err != nil {
		h.logger.WithError(err).Error("メニュー検索に失敗")

		status := http.StatusInternalServerError
		if err == usecase.ErrInvalidLimit {
			status = http.StatusBadRequest
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to search menu",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateMenuItem creates a new catalog entry (admin only).
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req MenuItemRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("リクエストのバインドに失敗")
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

	item, err := h.menuUsecase.CreateMenuItem(c.Request.Context(), h.toUsecaseRequest(req))
	if err != nil {
		h.logger.WithError(err).Error("メニュー項目の作成に失敗")

		status := http.StatusInternalServerError
		if err == usecase.ErrInvalidItemName || err == usecase.ErrInvalidCategory || err == usecase.ErrInvalidNutrition {
			status = http.StatusBadRequest
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to create menu item",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetMenuItem retrieves one catalog entry (admin only).
func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid menu item ID",
			Message: err.Error(),
		})
		return
	}

	item, err := h.menuUsecase.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if err == usecase.ErrMenuItemNotFound {
			status = http.StatusNotFound
		} else {
			h.logger.WithError(err).WithField("menu_id", id).Error("メニュー項目の取得に失敗")
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to get menu item",
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// ListMenuItems retrieves catalog entries with filtering (admin only).
func (h *MenuHandler) ListMenuItems(c *gin.Context) {
	var filterDTO AdminMenuFilterDTO
	if err := c.ShouldBindQuery(&filterDTO); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid query parameters",
			Message: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(filterDTO); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid query parameters",
			Message: err.Error(),
		})
		return
	}

	items, err := h.menuUsecase.ListMenuItems(c.Request.Context(), domain.MenuFilter{
		Category: filterDTO.Category,
		Search:   filterDTO.Search,
		Limit:    filterDTO.Limit,
	})
	if err != nil {
		h.logger.WithError(err).Error("メニューリストの取得に失敗")

		status := http.StatusInternalServerError
		if err == usecase.ErrInvalidCategory || err == usecase.ErrInvalidLimit {
			status = http.StatusBadRequest
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to list menu items",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// UpdateMenuItem replaces a catalog entry (admin only).
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid menu item ID",
			Message: err.Error(),
		})
		return
	}

	var req MenuItemRequestDTO
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

	item, err := h.menuUsecase.UpdateMenuItem(c.Request.Context(), id, h.toUsecaseRequest(req))
	if err != nil {
		status := http.StatusInternalServerError
		switch err {
		case usecase.ErrMenuItemNotFound:
			status = http.StatusNotFound
		case usecase.ErrInvalidItemName, usecase.ErrInvalidCategory, usecase.ErrInvalidNutrition:
			status = http.StatusBadRequest
		default:
			h.logger.WithError(err).WithField("menu_id", id).Error("メニュー項目の更新に失敗")
		}

		c.JSON(status, ErrorResponseDTO{
			Error:   "Failed to update menu item",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem deletes a catalog entry (admin only).
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{
			Error:   "Invalid menu item ID",
			Message: err.Error(),
		})
		return
	}

	if err := h.menuUsecase.DeleteMenuItem(c.Request.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if err == usecase.ErrMenuItemNotFound {
			status = http.StatusNotFound
		} else {
			h.logger.WithError(err).WithField("menu_id", id).Error("メニュー項目の削除に失敗")
		}

		c.JSON(status, ErrorResponseDTO{
			Error: "Failed to delete menu item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

func (h *MenuHandler) toUsecaseRequest(req MenuItemRequestDTO) usecase.MenuItemRequest {
	return usecase.MenuItemRequest{
		Name:         h.validator.SanitizeInput(req.Name),
		Category:     req.Category,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Fat:          req.Fat,
		SaturatedFat: req.SaturatedFat,
		TransFat:     req.TransFat,
		Cholesterol:  req.Cholesterol,
		Sodium:       req.Sodium,
		Fiber:        req.Fiber,
		Sugar:        req.Sugar,
	}
}

func (h *MenuHandler) toMenuResponseDTO(result filter.Result) MenuResponseDTO {
	resp := MenuResponseDTO{NoResults: result.NoResults}
	for _, g := range result.Groups {
		group := MenuGroupDTO{
			Category:    g.Category,
			DisplayName: g.DisplayName,
			Items:       make([]MenuResultItemDTO, 0, len(g.Items)),
		}
		for _, ri := range g.Items {
			parsed := listing.ParseName(ri.Item.Name)
			group.Items = append(group.Items, MenuResultItemDTO{
				ID:          ri.ID,
				Item:        ri.Item,
				DisplayName: parsed.Name,
				Quantity:    listing.PreferredQuantity(parsed, g.Category),
				Highlight:   ri.Highlight,
			})
		}
		resp.Groups = append(resp.Groups, group)
	}
	return resp
}
