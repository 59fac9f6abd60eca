package reports

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/pdf/{periodID}/{recipient}", h.RenderPDF)
	r.Get("/json/{periodID}/{recipient}", h.ShowDocument)
}

// RenderPDF streams the liquidation note inline, matching how browsers
// preview the document before printing.
func (h *Handler) RenderPDF(w http.ResponseWriter, r *http.Request) {
	periodID, recipient, ok := h.params(w, r)
	if !ok {
		return
	}
	pdf, filename, err := h.service.RenderPDF(r.Context(), periodID, recipient)
	if err != nil {
		h.logger.Error("render report failed", "error", err, "period_id", periodID)
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// ShowDocument returns the aggregated figures without rendering, useful for
// verifying a liquidation before printing it.
func (h *Handler) ShowDocument(w http.ResponseWriter, r *http.Request) {
	periodID, recipient, ok := h.params(w, r)
	if !ok {
		return
	}
	doc, err := h.service.BuildReport(r.Context(), periodID, recipient)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) params(w http.ResponseWriter, r *http.Request) (int64, Recipient, bool) {
	periodID, err := strconv.ParseInt(chi.URLParam(r, "periodID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid period id")
		return 0, "", false
	}
	recipient, err := ParseRecipient(chi.URLParam(r, "recipient"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return 0, "", false
	}
	return periodID, recipient, true
}
