package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Pie renders a pie chart with a side legend. A series summing to zero
// produces a single neutral disc so empty datasets still draw something.
func Pie(size int, series []float64, labels []string, opts PieOpts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	if len(series) != len(labels) {
		return "", fmt.Errorf("svg: labels length must match series")
	}
	if size <= 0 {
		size = DefaultHeight
	}
	palette := opts.Palette
	if len(palette) == 0 {
		palette = defaultPalette
	}
	labelColor := fallback(opts.LabelColor, "#475569")

	total := 0.0
	for _, v := range series {
		if v < 0 {
			return "", fmt.Errorf("svg: negative slice value")
		}
		total += v
	}

	legendWidth := 160
	width := size + legendWidth
	cx := float64(size) / 2
	cy := float64(size) / 2
	radius := float64(size)/2 - 8

	titleID := makeID(opts.Title, "pie-title")
	descID := makeID(opts.Title, "pie-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, size, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Pie chart"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Share per label"))))

	if total <= 0 {
		b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"#e2e8f0\"></circle>", cx, cy, radius))
	} else if len(series) == 1 {
		b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" aria-label=\"%s\"></circle>", cx, cy, radius, palette[0], template.HTMLEscapeString(labels[0])))
	} else {
		angle := -math.Pi / 2
		for i, value := range series {
			share := value / total
			if share <= 0 {
				continue
			}
			end := angle + share*2*math.Pi
			x1 := cx + radius*math.Cos(angle)
			y1 := cy + radius*math.Sin(angle)
			x2 := cx + radius*math.Cos(end)
			y2 := cy + radius*math.Sin(end)
			largeArc := 0
			if share > 0.5 {
				largeArc = 1
			}
			color := palette[i%len(palette)]
			b.WriteString(fmt.Sprintf("<path d=\"M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f Z\" fill=\"%s\" aria-label=\"%s\"></path>",
				cx, cy, x1, y1, radius, radius, largeArc, x2, y2, color, template.HTMLEscapeString(labels[i])))
			angle = end
		}
	}

	legendX := float64(size) + 12
	for i, label := range labels {
		y := 20 + float64(i)*18
		color := palette[i%len(palette)]
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", legendX, y-9, color))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s (%s)</text>",
			legendX+14, y, labelColor, template.HTMLEscapeString(label), formatTick(series[i])))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
