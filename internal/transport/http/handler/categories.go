package handler

import (
	"net/http"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/service"
	"habit-analytics/internal/pkg/logger"
)

// CategoryHandler manages the user's habit categories
type CategoryHandler struct {
	habits service.HabitService
	log    *logger.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(habits service.HabitService, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{habits: habits, log: log}
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

// CreateCategory creates a category
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createCategoryRequest true "Category"
// @Success 201 {object} entity.HabitCategory
// @Failure 409 {object} errorResponse
// @Router /api/v1/categories/create [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.habits.CreateCategory(r.Context(), userID, service.CreateCategoryInput{
		Name:        req.Name,
		Color:       req.Color,
		Icon:        req.Icon,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// ListCategories lists the user's categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{categories=[]entity.HabitCategory}
// @Router /api/v1/categories/list [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	categories, err := h.habits.ListCategories(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if categories == nil {
		categories = []*entity.HabitCategory{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// DeleteCategory removes a category
// @Summary Delete category
// @Tags categories
// @Accept json
// @Security BearerAuth
// @Param request body habitIDRequest true "Category to delete"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/v1/categories/delete [post]
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req habitIDRequest
	if !decodeBody(w, r, &req) {
		return
	}
	categoryID, ok := parseUUID(w, req.ID, "id")
	if !ok {
		return
	}

	if err := h.habits.DeleteCategory(r.Context(), categoryID, userID); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
