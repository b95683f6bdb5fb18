package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/pkg/logger"
	"habit-analytics/internal/transport/http/middleware"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, entity.ErrHabitNotFound),
		errors.Is(err, entity.ErrHabitLogNotFound),
		errors.Is(err, entity.ErrCategoryNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrCategoryExists):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrInvalidFrequency),
		errors.Is(err, entity.ErrInvalidRating),
		errors.Is(err, entity.ErrInvalidHabitName),
		errors.Is(err, entity.ErrInvalidCategoryName),
		errors.Is(err, entity.ErrInvalidDateRange):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("Request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
	}
	return userID, ok
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func parseUUID(w http.ResponseWriter, raw, field string) (uuid.UUID, bool) {
	if raw == "" {
		writeMessage(w, http.StatusBadRequest, field+" is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid "+field)
		return uuid.Nil, false
	}
	return id, true
}

// queryDay reads an optional YYYY-MM-DD parameter, falling back to def
func queryDay(w http.ResponseWriter, r *http.Request, name string, def dates.Day) (dates.Day, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	d, err := dates.Parse(raw)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid "+name+", expected YYYY-MM-DD")
		return 0, false
	}
	return d, true
}

// queryMonth reads year and month, defaulting to the month of today
func queryMonth(w http.ResponseWriter, r *http.Request, today dates.Day) (int, time.Month, bool) {
	year, month := today.Year(), today.Month()

	if raw := r.URL.Query().Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 9999 {
			writeMessage(w, http.StatusBadRequest, "Invalid year")
			return 0, 0, false
		}
		year = v
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			writeMessage(w, http.StatusBadRequest, "Invalid month")
			return 0, 0, false
		}
		month = time.Month(v)
	}

	return year, month, true
}
