package periods

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/muniworks/overtime/internal/platform/httpx"
	"github.com/muniworks/overtime/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/active", h.Active)
	r.Get("/{id}", h.Show)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/activate", h.Activate)
	r.Post("/{id}/deactivate", h.Deactivate)
	r.Post("/{id}/close", h.Close)
	r.Post("/{id}/reopen", h.Reopen)
}

type periodForm struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Active    bool   `json:"active"`
}

func (f periodForm) toInput() (CreatePeriodInput, error) {
	start, err := time.Parse("2006-01-02", f.StartDate)
	if err != nil {
		return CreatePeriodInput{}, err
	}
	end, err := time.Parse("2006-01-02", f.EndDate)
	if err != nil {
		return CreatePeriodInput{}, err
	}
	return CreatePeriodInput{Name: f.Name, StartDate: start, EndDate: end, Active: f.Active}, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list periods failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	period, err := h.service.CurrentActive(r.Context())
	if err != nil {
		h.logger.Error("load active period failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if period == nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no active period")
		return
	}
	httpx.JSON(w, http.StatusOK, period)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.periodID(w, r)
	if !ok {
		return
	}
	period, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, period)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var form periodForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	in, err := form.toInput()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "dates must use YYYY-MM-DD")
		return
	}
	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.logger.Error("create period failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := h.periodID(w, r)
	if !ok {
		return
	}
	var form periodForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return
	}
	in, err := form.toInput()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "dates must use YYYY-MM-DD")
		return
	}
	if err := h.service.Update(r.Context(), id, in); err != nil {
		h.logger.Error("update period failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := h.periodID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete period failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Activate)
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Close)
}

func (h *Handler) Reopen(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Reopen)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := h.periodID(w, r)
	if !ok {
		return
	}
	if err := h.service.Deactivate(r.Context(), id); err != nil {
		h.logger.Error("deactivate period failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, int64) (Period, error)) {
	if !h.requireAdmin(w, r) {
		return
	}
	id, ok := h.periodID(w, r)
	if !ok {
		return
	}
	period, err := op(r.Context(), id)
	if err != nil {
		h.logger.Error("period transition failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, period)
}

func (h *Handler) periodID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid period id")
		return 0, false
	}
	return id, true
}

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !shared.ScopeFromContext(r.Context()).Admin {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "administrative access required")
		return false
	}
	return true
}
