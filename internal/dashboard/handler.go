package dashboard

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/muniworks/overtime/internal/dashboard/svg"
	"github.com/muniworks/overtime/internal/platform/httpx"
)

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Horas Extras</title>
<style>
body{font-family:sans-serif;margin:24px;color:#0f172a;}
h1{font-size:20px;}h2{font-size:15px;margin-top:32px;}
.chart{max-width:760px;}
</style>
</head>
<body>
<h1>Horas Extras</h1>
<h2>Total de horas por período</h2>
<div class="chart">{{.BarChart}}</div>
<h2>Período activo por secretaría</h2>
<div class="chart">{{.PieChart}}</div>
</body>
</html>
`))

type pageData struct {
	BarChart template.HTML
	PieChart template.HTML
}

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.Page)
	r.Get("/dashboard.json", h.SeriesJSON)
}

// Page renders the charts server side, no client scripting involved.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.GetSeries(r.Context())
	if err != nil {
		h.logger.Error("load dashboard series failed", "error", err)
		httpx.RespondError(w, err)
		return
	}

	data := pageData{
		BarChart: template.HTML("<p>Sin períodos con horas cargadas.</p>"),
	}
	if len(series.Bars) > 0 {
		values, labels := split(series.Bars)
		chart, err := svg.Bars(svg.DefaultWidth, svg.DefaultHeight, values, labels, svg.BarOpts{
			Title:       "Horas por período",
			Description: "Total de horas extras registradas en cada período",
		})
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		data.BarChart = chart
	}

	values, labels := split(series.Pie)
	pie, err := svg.Pie(svg.DefaultHeight, values, labels, svg.PieOpts{
		Title:       "Horas por secretaría",
		Description: "Distribución de horas del período activo por secretaría",
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	data.PieChart = pie

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("render dashboard failed", "error", err)
	}
}

// SeriesJSON exposes the raw datasets for API consumers.
func (h *Handler) SeriesJSON(w http.ResponseWriter, r *http.Request) {
	series, err := h.service.GetSeries(r.Context())
	if err != nil {
		h.logger.Error("load dashboard series failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, series)
}

func split(points []Point) ([]float64, []string) {
	values := make([]float64, 0, len(points))
	labels := make([]string, 0, len(points))
	for _, p := range points {
		values = append(values, p.Hours.InexactFloat64())
		labels = append(labels, p.Label)
	}
	return values, labels
}
