package handler

import (
	"net/http"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/service"
	"habit-analytics/internal/pkg/logger"
	"habit-analytics/pkg/dates"
)

// HabitHandler handles habit-related HTTP requests
type HabitHandler struct {
	habits service.HabitService
	clock  dates.Clock
	log    *logger.Logger
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(habits service.HabitService, clock dates.Clock, log *logger.Logger) *HabitHandler {
	return &HabitHandler{
		habits: habits,
		clock:  clock,
		log:    log,
	}
}

type createHabitRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Frequency   entity.Frequency `json:"frequency"`
	Category    string           `json:"category"`
	Goal        *int32           `json:"goal"`
	Color       *string          `json:"color"`
}

type updateHabitRequest struct {
	ID          string            `json:"id"`
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Frequency   *entity.Frequency `json:"frequency"`
	Category    *string           `json:"category"`
	Goal        *int32            `json:"goal"`
	Color       *string           `json:"color"`
	IsActive    *bool             `json:"is_active"`
}

type habitIDRequest struct {
	ID string `json:"id"`
}

type toggleRequest struct {
	ID   string     `json:"id"`
	Date *dates.Day `json:"date"`
}

type logRequest struct {
	ID        string     `json:"id"`
	Date      *dates.Day `json:"date"`
	Completed bool       `json:"completed"`
	Notes     *string    `json:"notes"`
	Mood      *int32     `json:"mood"`
	Effort    *int32     `json:"effort"`
}

type logResponse struct {
	Habit *entity.Habit    `json:"habit"`
	Log   *entity.HabitLog `json:"log"`
}

// CreateHabit handles habit creation
// @Summary Create a new habit
// @Tags habits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createHabitRequest true "Create habit request"
// @Success 201 {object} entity.Habit
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /api/v1/habits/create [post]
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createHabitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	habit, err := h.habits.CreateHabit(r.Context(), userID, service.CreateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Category:    req.Category,
		Goal:        req.Goal,
		Color:       req.Color,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, habit)
}

// GetHabit retrieves a single habit by ID
// @Summary Get habit by ID
// @Tags habits
// @Produce json
// @Security BearerAuth
// @Param id query string true "Habit ID"
// @Success 200 {object} entity.Habit
// @Failure 404 {object} errorResponse
// @Router /api/v1/habits/get [get]
func (h *HabitHandler) GetHabit(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	habitID, ok := parseUUID(w, r.URL.Query().Get("id"), "id")
	if !ok {
		return
	}

	habit, err := h.habits.GetHabit(r.Context(), habitID, userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, habit)
}

// ListHabits retrieves all habits for the authenticated user
// @Summary List all habits
// @Tags habits
// @Produce json
// @Security BearerAuth
// @Param active_only query boolean false "Filter only active habits"
// @Success 200 {object} object{habits=[]entity.Habit,total_count=int}
// @Router /api/v1/habits/list [get]
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	activeOnly := r.URL.Query().Get("active_only") == "true"

	habits, total, err := h.habits.ListHabits(r.Context(), userID, activeOnly)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if habits == nil {
		habits = []*entity.Habit{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"habits":      habits,
		"total_count": total,
	})
}

// UpdateHabit updates the editable fields of a habit
// @Summary Update habit
// @Tags habits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body updateHabitRequest true "Update habit request"
// @Success 200 {object} entity.Habit
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/v1/habits/update [post]
func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req updateHabitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	habitID, ok := parseUUID(w, req.ID, "id")
	if !ok {
		return
	}

	habit, err := h.habits.UpdateHabit(r.Context(), habitID, userID, service.UpdateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		Frequency:   req.Frequency,
		Category:    req.Category,
		Goal:        req.Goal,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, habit)
}

// DeleteHabit removes a habit and its logs
// @Summary Delete habit
// @Tags habits
// @Accept json
// @Security BearerAuth
// @Param request body habitIDRequest true "Habit to delete"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/v1/habits/delete [post]
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
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
	habitID, ok := parseUUID(w, req.ID, "id")
	if !ok {
		return
	}

	if err := h.habits.DeleteHabit(r.Context(), habitID, userID); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleCompletion flips the completion of a day
// @Summary Toggle completion
// @Description Flips the log of the given day (today when omitted); a day without a log becomes completed
// @Tags habits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body toggleRequest true "Toggle request"
// @Success 200 {object} logResponse
// @Failure 404 {object} errorResponse
// @Router /api/v1/habits/toggle [post]
func (h *HabitHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req toggleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	habitID, ok := parseUUID(w, req.ID, "id")
	if !ok {
		return
	}

	day := h.clock.Today()
	if req.Date != nil {
		day = *req.Date
	}

	habit, log, err := h.habits.ToggleCompletion(r.Context(), habitID, userID, day)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, logResponse{Habit: habit, Log: log})
}

// LogCompletion writes a full log for a day
// @Summary Log a day
// @Tags habits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body logRequest true "Log request"
// @Success 200 {object} logResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/v1/habits/log [post]
func (h *HabitHandler) LogCompletion(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req logRequest
	if !decodeBody(w, r, &req) {
		return
	}
	habitID, ok := parseUUID(w, req.ID, "id")
	if !ok {
		return
	}

	day := h.clock.Today()
	if req.Date != nil {
		day = *req.Date
	}

	habit, log, err := h.habits.LogCompletion(r.Context(), habitID, userID, service.LogInput{
		Date:      day,
		Completed: req.Completed,
		Notes:     req.Notes,
		Mood:      req.Mood,
		Effort:    req.Effort,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, logResponse{Habit: habit, Log: log})
}

// GetHabitHistory returns every log of a habit
// @Summary Get habit history
// @Tags habits
// @Produce json
// @Security BearerAuth
// @Param id query string true "Habit ID"
// @Success 200 {object} object{logs=[]entity.HabitLog}
// @Failure 404 {object} errorResponse
// @Router /api/v1/habits/history [get]
func (h *HabitHandler) GetHabitHistory(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	habitID, ok := parseUUID(w, r.URL.Query().Get("id"), "id")
	if !ok {
		return
	}

	logs, err := h.habits.GetHabitHistory(r.Context(), habitID, userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if logs == nil {
		logs = []entity.HabitLog{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}
