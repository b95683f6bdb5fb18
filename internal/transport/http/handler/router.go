package handler

import (
	"net/http"

	"habit-analytics/internal/pkg/logger"
	"habit-analytics/internal/transport/http/middleware"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Router sets up HTTP routes
type Router struct {
	habitHandler    *HabitHandler
	reportHandler   *ReportHandler
	categoryHandler *CategoryHandler
	authMiddleware  *middleware.AuthMiddleware
	rateLimiter     *middleware.RateLimiter
	log             *logger.Logger
	mux             *http.ServeMux
}

// NewRouter creates a new router. rateLimiter may be nil.
func NewRouter(
	habitHandler *HabitHandler,
	reportHandler *ReportHandler,
	categoryHandler *CategoryHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	log *logger.Logger,
) *Router {
	return &Router{
		habitHandler:    habitHandler,
		reportHandler:   reportHandler,
		categoryHandler: categoryHandler,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
		log:             log,
		mux:             http.NewServeMux(),
	}
}

// Setup configures all routes
func (r *Router) Setup() http.Handler {
	auth := r.authMiddleware.Auth

	// Habit routes (all require authentication)
	r.mux.HandleFunc("/api/v1/habits/create", auth(r.habitHandler.CreateHabit))
	r.mux.HandleFunc("/api/v1/habits/list", auth(r.habitHandler.ListHabits))
	r.mux.HandleFunc("/api/v1/habits/get", auth(r.habitHandler.GetHabit))
	r.mux.HandleFunc("/api/v1/habits/update", auth(r.habitHandler.UpdateHabit))
	r.mux.HandleFunc("/api/v1/habits/delete", auth(r.habitHandler.DeleteHabit))
	r.mux.HandleFunc("/api/v1/habits/toggle", auth(r.habitHandler.ToggleCompletion))
	r.mux.HandleFunc("/api/v1/habits/log", auth(r.habitHandler.LogCompletion))
	r.mux.HandleFunc("/api/v1/habits/history", auth(r.habitHandler.GetHabitHistory))

	r.mux.HandleFunc("/api/v1/habits/analytics", auth(r.reportHandler.GetAnalytics))
	r.mux.HandleFunc("/api/v1/habits/insights", auth(r.reportHandler.GetInsights))
	r.mux.HandleFunc("/api/v1/insights/overall", auth(r.reportHandler.GetOverallInsights))

	r.mux.HandleFunc("/api/v1/calendar/month", auth(r.reportHandler.GetCalendarMonth))
	r.mux.HandleFunc("/api/v1/calendar/heatmap", auth(r.reportHandler.GetHeatmap))
	r.mux.HandleFunc("/api/v1/calendar/week", auth(r.reportHandler.GetWeeklyOverview))
	r.mux.HandleFunc("/api/v1/calendar/stats", auth(r.reportHandler.GetMonthlyStats))
	r.mux.HandleFunc("/api/v1/calendar/day", auth(r.reportHandler.GetDay))
	r.mux.HandleFunc("/api/v1/calendar/counts", auth(r.reportHandler.GetMonthCounts))

	r.mux.HandleFunc("/api/v1/categories/create", auth(r.categoryHandler.CreateCategory))
	r.mux.HandleFunc("/api/v1/categories/list", auth(r.categoryHandler.ListCategories))
	r.mux.HandleFunc("/api/v1/categories/delete", auth(r.categoryHandler.DeleteCategory))

	r.mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	r.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var handler http.Handler = r.mux

	handler = middleware.Logging(r.log)(handler)

	if r.rateLimiter != nil {
		handler = r.rateLimiter.Middleware(handler)
	}

	return handler
}
