package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/mlafitness/backend/internal/exercises"
	"github.com/mlafitness/backend/internal/telemetry/metrics"
	"github.com/mlafitness/backend/internal/telemetry/tracing"
	"github.com/mlafitness/backend/pkg"
)

type Handler struct {
	analyzer       *Analyzer
	metricsManager *metrics.Manager
}

func NewHandler(analyzer *Analyzer, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		analyzer:       analyzer,
		metricsManager: metricsManager,
	}
}

type StatsResponse struct {
	Stats []exercises.UserTotals `json:"stats"`
}

type WeeklyStatsResponse struct {
	Stats []exercises.TypeTotal `json:"stats"`
}

type TrendResponse struct {
	Trend []TrendEntry `json:"trend"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (handler *Handler) HandleAllRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.allRecords")
	defer span.End()

	records, err := handler.analyzer.AllRecords(ctx)
	if err != nil {
		log.Errorf("failed to list exercise records: %s", err)
		writeInternalError(w)
		return
	}
	if records == nil {
		records = []exercises.Record{}
	}

	handler.writeJSON(w, records)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.all")
	defer span.End()

	handler.metricsManager.CounterStatsQueries.Inc()

	totals, err := handler.analyzer.TotalsByUser(ctx)
	if err != nil {
		log.Errorf("failed to get totals by user: %s", err)
		writeInternalError(w)
		return
	}

	handler.writeJSON(w, StatsResponse{Stats: emptyIfNil(totals)})
}

func (handler *Handler) HandleUserStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.user")
	defer span.End()

	handler.metricsManager.CounterStatsQueries.Inc()

	username := mux.Vars(r)["username"]
	if username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}

	totals, err := handler.analyzer.TotalsForUser(ctx, username)
	if err != nil {
		log.Errorf("failed to get totals for user [%s]: %s", username, err)
		writeInternalError(w)
		return
	}

	handler.writeJSON(w, StatsResponse{Stats: emptyIfNil(totals)})
}

func (handler *Handler) HandleDailyTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.dailyTrend")
	defer span.End()

	handler.metricsManager.CounterStatsQueries.Inc()

	username := mux.Vars(r)["username"]
	if username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}

	trend, err := handler.analyzer.DailyTrend(ctx, username)
	if err != nil {
		log.Errorf("failed to get daily trend for user [%s]: %s", username, err)
		writeInternalError(w)
		return
	}

	handler.writeJSON(w, TrendResponse{Trend: trend})
}

func (handler *Handler) HandleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.weekly")
	defer span.End()

	handler.metricsManager.CounterStatsQueries.Inc()

	username := r.URL.Query().Get("user")
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	totals, err := handler.analyzer.TotalsForRange(ctx, username, startStr, endStr)
	if err != nil {
		if errors.Is(err, ErrInvalidDateFormat) {
			log.Tracef("weekly stats, parse dates [%s - %s]: %s", startStr, endStr, err)
			handler.writeJSONStatus(w, errorResponse{Error: "Invalid date format"}, http.StatusBadRequest)
			return
		}
		log.Errorf("failed to get weekly stats for user [%s]: %s", username, err)
		writeInternalError(w)
		return
	}

	handler.writeJSON(w, WeeklyStatsResponse{Stats: emptyIfNil(totals)})
}

func (handler *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	handler.writeJSON(w, map[string]string{
		"status":    "healthy",
		"service":   "analytics",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (handler *Handler) writeJSON(w http.ResponseWriter, payload any) {
	handler.writeJSONStatus(w, payload, http.StatusOK)
}

func (handler *Handler) writeJSONStatus(w http.ResponseWriter, payload any, statusCode int) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, payloadJson, statusCode)
}

func writeInternalError(w http.ResponseWriter) {
	pkg.WriteResponseBytes(
		w,
		pkg.ContentType.JSON,
		[]byte(`{"error": "An internal error occurred"}`),
		http.StatusInternalServerError,
	)
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
