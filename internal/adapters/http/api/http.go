// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/competency/internal/adapters/repository"
	service "github.com/okian/competency/internal/app"
	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/survey"
	"github.com/okian/competency/internal/domain/table"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Catalogs() catalog.Set
	Table(ctx context.Context, f table.Filter) (service.TableResult, error)
	Lookup(ctx context.Context, query string) (service.LookupResult, error)
	SurveyColumns(ctx context.Context) ([]string, error)
	SurveyChoices(ctx context.Context, column, sep string, limit int) (service.SurveyResult, error)
	Reload(ctx context.Context) (service.ReloadResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	catalogsHandler  *CatalogsHandler
	tableHandler     *TableHandler
	employeesHandler *EmployeesHandler
	surveyHandler    *SurveyHandler
	reloadHandler    *ReloadHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		catalogsHandler:  NewCatalogsHandler(deps),
		tableHandler:     NewTableHandler(deps),
		employeesHandler: NewEmployeesHandler(deps),
		surveyHandler:    NewSurveyHandler(deps),
		reloadHandler:    NewReloadHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/catalogs", MetricsMiddleware(s.catalogsHandler.HandleGetCatalogs, "catalogs"))
	mux.HandleFunc("/api/table", MetricsMiddleware(s.tableHandler.HandleGetTable, "table"))
	mux.HandleFunc("/api/employees", MetricsMiddleware(s.employeesHandler.HandleLookup, "employees"))
	mux.HandleFunc("/api/survey/columns", MetricsMiddleware(s.surveyHandler.HandleColumns, "survey_columns"))
	mux.HandleFunc("/api/survey/choices", MetricsMiddleware(s.surveyHandler.HandleChoices, "survey_choices"))
	mux.HandleFunc("/api/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates upstream sentinel errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotLoaded), errors.Is(err, service.ErrNoDataset):
		writeError(w, http.StatusServiceUnavailable, "dataset_unavailable", err)
	case errors.Is(err, service.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, survey.ErrUnknownColumn):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "timeout", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// allowMethod writes 405 and reports false when r does not use method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
	return false
}
