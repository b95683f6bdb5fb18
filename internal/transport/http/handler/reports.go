package handler

import (
	"net/http"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/service"
	"habit-analytics/internal/pkg/logger"
	svc "habit-analytics/internal/service"
	"habit-analytics/pkg/dates"
)

// defaultHeatmapDays is the span served when the caller omits from
const defaultHeatmapDays = 365

// ReportHandler serves analytics, insights and calendar views
type ReportHandler struct {
	reports service.ReportService
	clock   dates.Clock
	log     *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports service.ReportService, clock dates.Clock, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		clock:   clock,
		log:     log,
	}
}

type monthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

type calendarMonthResponse struct {
	*entity.CalendarMonth
	Previous monthRef `json:"previous"`
	Next     monthRef `json:"next"`
}

// GetAnalytics returns the statistics of one habit
// @Summary Habit analytics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id query string true "Habit ID"
// @Success 200 {object} entity.HabitAnalytics
// @Failure 404 {object} errorResponse
// @Router /api/v1/habits/analytics [get]
func (h *ReportHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
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

	analytics, err := h.reports.GetHabitAnalytics(r.Context(), habitID, userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}

// GetInsights returns the insights of one habit
// @Summary Habit insights
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id query string true "Habit ID"
// @Success 200 {object} object{insights=[]entity.HabitInsight}
// @Failure 404 {object} errorResponse
// @Router /api/v1/habits/insights [get]
func (h *ReportHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
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

	insights, err := h.reports.GetHabitInsights(r.Context(), habitID, userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"insights": nonNilInsights(insights)})
}

// GetOverallInsights returns insights across every habit of the user
// @Summary Overall insights
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{insights=[]entity.HabitInsight}
// @Router /api/v1/insights/overall [get]
func (h *ReportHandler) GetOverallInsights(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	insights, err := h.reports.GetOverallInsights(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"insights": nonNilInsights(insights)})
}

// GetCalendarMonth returns the month grid
// @Summary Calendar month
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year, defaults to the current one"
// @Param month query int false "Month 1-12, defaults to the current one"
// @Success 200 {object} calendarMonthResponse
// @Router /api/v1/calendar/month [get]
func (h *ReportHandler) GetCalendarMonth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	year, month, ok := queryMonth(w, r, h.clock.Today())
	if !ok {
		return
	}

	cal, err := h.reports.GetCalendarMonth(r.Context(), userID, year, month)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	prevYear, prevMonth := svc.PreviousMonth(year, month)
	nextYear, nextMonth := svc.NextMonth(year, month)
	writeJSON(w, http.StatusOK, calendarMonthResponse{
		CalendarMonth: cal,
		Previous:      monthRef{Year: prevYear, Month: prevMonth},
		Next:          monthRef{Year: nextYear, Month: nextMonth},
	})
}

// GetHeatmap returns one intensity cell per day
// @Summary Completion heatmap
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD, defaults to today"
// @Success 200 {object} object{cells=[]entity.HeatmapCell}
// @Failure 400 {object} errorResponse
// @Router /api/v1/calendar/heatmap [get]
func (h *ReportHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	to, ok := queryDay(w, r, "to", h.clock.Today())
	if !ok {
		return
	}
	from, ok := queryDay(w, r, "from", to.AddDays(-(defaultHeatmapDays - 1)))
	if !ok {
		return
	}

	cells, err := h.reports.GetHeatmap(r.Context(), userID, from, to)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"cells": cells})
}

// GetWeeklyOverview returns seven day tallies
// @Summary Weekly overview
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param start query string false "First day, YYYY-MM-DD, defaults to the start of this week"
// @Success 200 {object} entity.WeeklyOverview
// @Router /api/v1/calendar/week [get]
func (h *ReportHandler) GetWeeklyOverview(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	start, ok := queryDay(w, r, "start", h.clock.Today().StartOfWeek())
	if !ok {
		return
	}

	overview, err := h.reports.GetWeeklyOverview(r.Context(), userID, start)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

// GetMonthlyStats returns the month summary
// @Summary Monthly statistics
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month 1-12"
// @Success 200 {object} entity.MonthlyStats
// @Router /api/v1/calendar/stats [get]
func (h *ReportHandler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	year, month, ok := queryMonth(w, r, h.clock.Today())
	if !ok {
		return
	}

	stats, err := h.reports.GetMonthlyStats(r.Context(), userID, year, month)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// GetDay lists the active habits and their state on one day
// @Summary Day detail
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day, YYYY-MM-DD, defaults to today"
// @Success 200 {object} object{date=string,habits=[]entity.CalendarHabitData}
// @Router /api/v1/calendar/day [get]
func (h *ReportHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	day, ok := queryDay(w, r, "date", h.clock.Today())
	if !ok {
		return
	}

	habits, err := h.reports.GetDay(r.Context(), userID, day)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if habits == nil {
		habits = []entity.CalendarHabitData{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"date": day, "habits": habits})
}

// GetMonthCounts returns completions per day of a month
// @Summary Daily completion counts
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param year query int false "Year"
// @Param month query int false "Month 1-12"
// @Success 200 {object} object{year=int,month=int,counts=[]int}
// @Router /api/v1/calendar/counts [get]
func (h *ReportHandler) GetMonthCounts(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	year, month, ok := queryMonth(w, r, h.clock.Today())
	if !ok {
		return
	}

	counts, err := h.reports.GetMonthCounts(r.Context(), userID, year, month)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"year": year, "month": month, "counts": counts})
}

func nonNilInsights(in []entity.HabitInsight) []entity.HabitInsight {
	if in == nil {
		return []entity.HabitInsight{}
	}
	return in
}
