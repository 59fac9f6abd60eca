package reports

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

// placeholder stands in for a missing department name on a report line.
const placeholder = "-"

// Renderer converts the assembled HTML into the final PDF bytes.
type Renderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Service aggregates hour entries into liquidation notes.
type Service struct {
	repo     Repository
	renderer Renderer
	logger   *slog.Logger
	now      func() time.Time
	collator *collate.Collator
}

// NewService constructs a Service instance.
func NewService(repo Repository, renderer Renderer, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
		collator: collate.New(language.Spanish, collate.IgnoreCase),
	}
}

// BuildReport assembles the liquidation note for a closed period. Open
// periods are rejected before any aggregation happens.
func (s *Service) BuildReport(ctx context.Context, periodID int64, recipient Recipient) (Document, error) {
	period, err := s.repo.GetPeriod(ctx, periodID)
	if err != nil {
		return Document{}, fmt.Errorf("period %d: %w", periodID, err)
	}
	if !period.Closed {
		return Document{}, fmt.Errorf(
			"%w: period %q is still open, close it before generating the liquidation report",
			httpx.ErrPrecondition, period.Name)
	}

	lines, err := s.repo.ListEntries(ctx, periodID)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:         uuid.NewString(),
		PeriodName: period.Name,
		Header:     headers[recipient],
		Rows:       aggregate(lines),
		GrandTotal: decimal.Zero,
		IssueDate:  FormatIssueDate(s.now()),
	}
	for _, row := range doc.Rows {
		doc.GrandTotal = doc.GrandTotal.Add(row.Subtotal)
	}
	s.sortRows(doc.Rows)
	return doc, nil
}

// RenderPDF builds the note and hands the HTML to the PDF renderer.
func (s *Service) RenderPDF(ctx context.Context, periodID int64, recipient Recipient) ([]byte, string, error) {
	doc, err := s.BuildReport(ctx, periodID, recipient)
	if err != nil {
		return nil, "", err
	}
	pdf, err := s.renderer.RenderHTML(ctx, buildHTML(doc))
	if err != nil {
		return nil, "", fmt.Errorf("render report: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("liquidation report rendered",
			"period", doc.PeriodName, "recipient", string(recipient), "rows", len(doc.Rows), "bytes", len(pdf))
	}
	filename := fmt.Sprintf("Reporte_%s.pdf", doc.PeriodName)
	return pdf, filename, nil
}

// aggregate groups entries by employee and resolves the display department.
// A single entry shows where the hours were charged; multiple entries fall
// back to the employee's home department.
func aggregate(lines []EntryLine) []Row {
	type group struct {
		row   Row
		count int
		home  *string
		first *string
	}
	groups := make(map[int64]*group)
	order := make([]int64, 0, len(lines))

	for _, line := range lines {
		g, ok := groups[line.EmployeeID]
		if !ok {
			g = &group{
				row: Row{
					EmployeeName: line.EmployeeName,
					BadgeID:      line.BadgeID,
					Subtotal:     decimal.Zero,
				},
				home:  line.HomeDepartment,
				first: line.ChargedDepartment,
			}
			groups[line.EmployeeID] = g
			order = append(order, line.EmployeeID)
		}
		g.count++
		g.row.Subtotal = g.row.Subtotal.Add(line.Hours)
	}

	rows := make([]Row, 0, len(order))
	for _, id := range order {
		g := groups[id]
		switch {
		case g.count == 1 && g.first != nil:
			g.row.DisplayDepartment = *g.first
		case g.count > 1 && g.home != nil:
			g.row.DisplayDepartment = *g.home
		default:
			g.row.DisplayDepartment = placeholder
		}
		rows = append(rows, g.row)
	}
	return rows
}

func (s *Service) sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return s.collator.CompareString(rows[i].EmployeeName, rows[j].EmployeeName) < 0
	})
}
