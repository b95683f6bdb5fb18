package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/service"
	"habit-analytics/internal/pkg/logger"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// AnalyticsHandler serves the read-side reports over gRPC
type AnalyticsHandler struct {
	reports service.ReportService
	clock   dates.Clock
	log     *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(reports service.ReportService, clock dates.Clock, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		reports: reports,
		clock:   clock,
		log:     log,
	}
}

func (h *AnalyticsHandler) GetHabitAnalytics(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, habitID, err := h.habitRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	analytics, err := h.reports.GetHabitAnalytics(ctx, habitID, userID)
	if err != nil {
		return nil, h.toStatus(err)
	}

	return toStruct(analytics)
}

func (h *AnalyticsHandler) GetHabitInsights(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, habitID, err := h.habitRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	insights, err := h.reports.GetHabitInsights(ctx, habitID, userID)
	if err != nil {
		return nil, h.toStatus(err)
	}

	return toStruct(map[string]interface{}{"insights": insightsOrEmpty(insights)})
}

func (h *AnalyticsHandler) GetOverallInsights(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing user")
	}

	insights, err := h.reports.GetOverallInsights(ctx, userID)
	if err != nil {
		return nil, h.toStatus(err)
	}

	return toStruct(map[string]interface{}{"insights": insightsOrEmpty(insights)})
}

func (h *AnalyticsHandler) GetCalendarMonth(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing user")
	}

	today := h.clock.Today()
	year, month := today.Year(), today.Month()
	fields := req.GetFields()
	if v, ok := fields["year"]; ok {
		year = int(v.GetNumberValue())
		if year < 1 || year > 9999 {
			return nil, status.Error(codes.InvalidArgument, "invalid year")
		}
	}
	if v, ok := fields["month"]; ok {
		m := int(v.GetNumberValue())
		if m < 1 || m > 12 {
			return nil, status.Error(codes.InvalidArgument, "invalid month")
		}
		month = time.Month(m)
	}

	cal, err := h.reports.GetCalendarMonth(ctx, userID, year, month)
	if err != nil {
		return nil, h.toStatus(err)
	}

	return toStruct(cal)
}

func (h *AnalyticsHandler) habitRequest(ctx context.Context, req *structpb.Struct) (uuid.UUID, uuid.UUID, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, uuid.Nil, status.Error(codes.Unauthenticated, "missing user")
	}

	raw := req.GetFields()["habit_id"].GetStringValue()
	if raw == "" {
		return uuid.Nil, uuid.Nil, status.Error(codes.InvalidArgument, "habit_id is required")
	}
	habitID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, uuid.Nil, status.Error(codes.InvalidArgument, "invalid habit_id")
	}

	return userID, habitID, nil
}

func (h *AnalyticsHandler) toStatus(err error) error {
	switch {
	case errors.Is(err, entity.ErrHabitNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, entity.ErrInvalidDateRange):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		h.log.Error("gRPC request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

// toStruct converts a JSON-tagged value into a protobuf Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("failed to encode response: %v", err))
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("failed to encode response: %v", err))
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("failed to encode response: %v", err))
	}
	return out, nil
}

func insightsOrEmpty(in []entity.HabitInsight) []entity.HabitInsight {
	if in == nil {
		return []entity.HabitInsight{}
	}
	return in
}
