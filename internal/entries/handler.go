package entries

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type entryForm struct {
	EmployeeID          int64   `json:"employee_id" validate:"required,gt=0"`
	PeriodID            *int64  `json:"period_id" validate:"omitempty,gt=0"`
	ChargedDepartmentID *int64  `json:"charged_department_id" validate:"omitempty,gt=0"`
	WorkDate            *string `json:"work_date" validate:"omitempty,datetime=2006-01-02"`
	Reason              *string `json:"reason" validate:"omitempty,max=500"`
	Hours               string  `json:"hours" validate:"required"`
	ExceededConfirmed   bool    `json:"exceeded_confirmed"`
}

func (h *Handler) decodeEntry(w http.ResponseWriter, r *http.Request) (Entry, bool) {
	var form entryForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed json body")
		return Entry{}, false
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return Entry{}, false
	}
	hours, err := decimal.NewFromString(form.Hours)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "hours must be a decimal number")
		return Entry{}, false
	}
	if hours.Exponent() < -1 {
		httpx.RespondError(w, &httpx.FieldErrors{
			Detail: "hours are recorded to one decimal place",
			Fields: map[string]string{"hours": "use at most one decimal place"},
		})
		return Entry{}, false
	}
	entry := Entry{
		EmployeeID:          form.EmployeeID,
		PeriodID:            form.PeriodID,
		ChargedDepartmentID: form.ChargedDepartmentID,
		Reason:              form.Reason,
		Hours:               hours,
		ExceededConfirmed:   form.ExceededConfirmed,
	}
	if form.WorkDate != nil {
		parsed, err := time.Parse("2006-01-02", *form.WorkDate)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "work_date must use YYYY-MM-DD")
			return Entry{}, false
		}
		entry.WorkDate = &parsed
	}
	return entry, true
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 50
	}
	filters := ListFilters{Page: page, Limit: limit}
	if raw := r.URL.Query().Get("period_id"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.PeriodID = &parsed
		}
	}
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.EmployeeID = &parsed
		}
	}

	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list entries failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entryID(w, r)
	if !ok {
		return
	}
	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), entry)
	if err != nil {
		h.logger.Error("create entry failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entryID(w, r)
	if !ok {
		return
	}
	entry, ok := h.decodeEntry(w, r)
	if !ok {
		return
	}
	updated, err := h.service.Update(r.Context(), id, entry)
	if err != nil {
		h.logger.Error("update entry failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.entryID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete entry failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid entry id")
		return 0, false
	}
	return id, true
}
