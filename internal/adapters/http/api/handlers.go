package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/competency/internal/app"
	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/table"
)

// CatalogsHandler lists the configured catalogs.
type CatalogsHandler struct {
	deps interface{ Catalogs() catalog.Set }
}

// NewCatalogsHandler creates a catalogs handler.
func NewCatalogsHandler(deps interface{ Catalogs() catalog.Set }) *CatalogsHandler {
	return &CatalogsHandler{deps: deps}
}

// HandleGetCatalogs handles GET /api/catalogs.
func (h *CatalogsHandler) HandleGetCatalogs(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"catalogs": h.deps.Catalogs()})
}

// TableDependencies defines the table operation.
type TableDependencies interface {
	Table(ctx context.Context, f table.Filter) (service.TableResult, error)
}

// TableHandler serves the filtered table.
type TableHandler struct {
	deps TableDependencies
}

// NewTableHandler creates a table handler.
func NewTableHandler(deps TableDependencies) *TableHandler {
	return &TableHandler{deps: deps}
}

// HandleGetTable handles GET /api/table?level=&region=.
func (h *TableHandler) HandleGetTable(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	res, err := h.deps.Table(r.Context(), table.Filter{
		Level:  strings.TrimSpace(q.Get("level")),
		Region: strings.TrimSpace(q.Get("region")),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// LookupDependencies defines the lookup operation.
type LookupDependencies interface {
	Lookup(ctx context.Context, query string) (service.LookupResult, error)
}

// EmployeesHandler serves lookups by identifier.
type EmployeesHandler struct {
	deps LookupDependencies
}

// NewEmployeesHandler creates a lookup handler.
func NewEmployeesHandler(deps LookupDependencies) *EmployeesHandler {
	return &EmployeesHandler{deps: deps}
}

// HandleLookup handles GET /api/employees?nip=. A miss is 200 with
// found=false and suggestions.
func (h *EmployeesHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	nip := strings.TrimSpace(r.URL.Query().Get("nip"))
	if nip == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: nip", ErrMissingParam))
		return
	}
	res, err := h.deps.Lookup(r.Context(), nip)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SurveyDependencies defines the survey operations.
type SurveyDependencies interface {
	SurveyColumns(ctx context.Context) ([]string, error)
	SurveyChoices(ctx context.Context, column, sep string, limit int) (service.SurveyResult, error)
}

// SurveyHandler serves the survey bar charts.
type SurveyHandler struct {
	deps SurveyDependencies
}

// NewSurveyHandler creates a survey handler.
func NewSurveyHandler(deps SurveyDependencies) *SurveyHandler {
	return &SurveyHandler{deps: deps}
}

// HandleColumns handles GET /api/survey/columns.
func (h *SurveyHandler) HandleColumns(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	cols, err := h.deps.SurveyColumns(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"columns": cols})
}

// HandleChoices handles GET /api/survey/choices?column=&limit=&sep=.
func (h *SurveyHandler) HandleChoices(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	column := strings.TrimSpace(q.Get("column"))
	if column == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: column", ErrMissingParam))
		return
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: limit must be a non-negative integer", ErrBadRequest))
			return
		}
		limit = n
	}
	res, err := h.deps.SurveyChoices(r.Context(), column, q.Get("sep"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ReloadDependencies defines the reload operation.
type ReloadDependencies interface {
	Reload(ctx context.Context) (service.ReloadResult, error)
}

// ReloadHandler re-reads the source files.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /api/reload. A failed reload answers 502 with
// the store states; previous snapshots keep serving.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	res, err := h.deps.Reload(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"code":    "reload_failed",
			"message": err.Error(),
			"result":  res,
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}
