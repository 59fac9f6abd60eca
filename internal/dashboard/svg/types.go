package svg

// BarOpts customises the bar chart renderer.
type BarOpts struct {
	Title       string
	Description string
	BarColor    string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
}

// PieOpts customises the pie chart renderer.
type PieOpts struct {
	Title       string
	Description string
	Palette     []string
	LabelColor  string
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 24.0
	DefaultTicks   = 6
)

var defaultPalette = []string{
	"#0ea5e9", "#f97316", "#22c55e", "#a855f7",
	"#eab308", "#ef4444", "#14b8a6", "#6366f1",
}
