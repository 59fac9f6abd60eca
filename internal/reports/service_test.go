package reports

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

type memoryReportRepo struct {
	periods map[int64]PeriodInfo
	lines   map[int64][]EntryLine
}

func (r *memoryReportRepo) GetPeriod(ctx context.Context, id int64) (PeriodInfo, error) {
	info, ok := r.periods[id]
	if !ok {
		return PeriodInfo{}, httpx.ErrNotFound
	}
	return info, nil
}

func (r *memoryReportRepo) ListEntries(ctx context.Context, periodID int64) ([]EntryLine, error) {
	return r.lines[periodID], nil
}

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func closedPeriodRepo() *memoryReportRepo {
	return &memoryReportRepo{
		periods: map[int64]PeriodInfo{
			1: {ID: 1, Name: "Noviembre 2025", Closed: true},
			2: {ID: 2, Name: "Diciembre 2025"},
		},
		lines: map[int64][]EntryLine{
			1: {
				{EmployeeID: 10, EmployeeName: "ZAPATA, ANA", BadgeID: "100", HomeDepartment: strPtr("Obras"), ChargedDepartment: strPtr("Corralón"), Hours: dec("5.0")},
				{EmployeeID: 10, EmployeeName: "ZAPATA, ANA", BadgeID: "100", HomeDepartment: strPtr("Obras"), ChargedDepartment: strPtr("Tránsito"), Hours: dec("3.0")},
				{EmployeeID: 11, EmployeeName: "ACOSTA, BRUNO", BadgeID: "101", HomeDepartment: strPtr("Hacienda"), ChargedDepartment: strPtr("Rentas"), Hours: dec("10.0")},
			},
		},
	}
}

func TestBuildReportGroupsAndResolvesDepartments(t *testing.T) {
	svc := NewService(closedPeriodRepo(), nil, nil)

	doc, err := svc.BuildReport(context.Background(), 1, RecipientAndrea)
	require.NoError(t, err)
	require.Len(t, doc.Rows, 2)

	// Sorted by employee name, so ACOSTA comes first.
	require.Equal(t, "ACOSTA, BRUNO", doc.Rows[0].EmployeeName)
	require.Equal(t, "Rentas", doc.Rows[0].DisplayDepartment)
	require.Equal(t, "10.0", doc.Rows[0].Subtotal.StringFixed(1))

	// Multiple entries fall back to the home department.
	require.Equal(t, "ZAPATA, ANA", doc.Rows[1].EmployeeName)
	require.Equal(t, "Obras", doc.Rows[1].DisplayDepartment)
	require.Equal(t, "8.0", doc.Rows[1].Subtotal.StringFixed(1))

	require.Equal(t, "18.0", doc.GrandTotal.StringFixed(1))
	require.Equal(t, "SRA. BALTIERI ANDREA SOLEDAD", doc.Header.Name)
}

func TestBuildReportRejectsOpenPeriod(t *testing.T) {
	svc := NewService(closedPeriodRepo(), nil, nil)

	_, err := svc.BuildReport(context.Background(), 2, RecipientEdith)
	require.ErrorIs(t, err, httpx.ErrPrecondition)
}

func TestBuildReportUnknownPeriod(t *testing.T) {
	svc := NewService(closedPeriodRepo(), nil, nil)

	_, err := svc.BuildReport(context.Background(), 99, RecipientEdith)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestMissingDepartmentsUsePlaceholder(t *testing.T) {
	repo := &memoryReportRepo{
		periods: map[int64]PeriodInfo{1: {ID: 1, Name: "Enero 2026", Closed: true}},
		lines: map[int64][]EntryLine{
			1: {
				{EmployeeID: 10, EmployeeName: "SOSA, CARLA", BadgeID: "200", Hours: dec("2.0")},
				{EmployeeID: 11, EmployeeName: "VEGA, DARIO", BadgeID: "201", Hours: dec("1.0")},
				{EmployeeID: 11, EmployeeName: "VEGA, DARIO", BadgeID: "201", Hours: dec("1.5")},
			},
		},
	}
	svc := NewService(repo, nil, nil)

	doc, err := svc.BuildReport(context.Background(), 1, RecipientEdith)
	require.NoError(t, err)
	require.Equal(t, "-", doc.Rows[0].DisplayDepartment)
	require.Equal(t, "-", doc.Rows[1].DisplayDepartment)
}

func TestBuildReportAggregatesAreIdempotent(t *testing.T) {
	svc := NewService(closedPeriodRepo(), nil, nil)
	ctx := context.Background()

	first, err := svc.BuildReport(ctx, 1, RecipientAndrea)
	require.NoError(t, err)
	second, err := svc.BuildReport(ctx, 1, RecipientAndrea)
	require.NoError(t, err)

	require.Equal(t, first.Rows, second.Rows)
	require.True(t, first.GrandTotal.Equal(second.GrandTotal))
	require.NotEqual(t, first.ID, second.ID)
}

func TestSpanishCollationOrdersAccentedNames(t *testing.T) {
	repo := &memoryReportRepo{
		periods: map[int64]PeriodInfo{1: {ID: 1, Name: "Enero 2026", Closed: true}},
		lines: map[int64][]EntryLine{
			1: {
				{EmployeeID: 1, EmployeeName: "Núñez, Pedro", BadgeID: "1", ChargedDepartment: strPtr("Obras"), Hours: dec("1.0")},
				{EmployeeID: 2, EmployeeName: "Naranjo, Luis", BadgeID: "2", ChargedDepartment: strPtr("Obras"), Hours: dec("1.0")},
				{EmployeeID: 3, EmployeeName: "Ávalos, Rita", BadgeID: "3", ChargedDepartment: strPtr("Obras"), Hours: dec("1.0")},
			},
		},
	}
	svc := NewService(repo, nil, nil)

	doc, err := svc.BuildReport(context.Background(), 1, RecipientAndrea)
	require.NoError(t, err)
	require.Equal(t, "Ávalos, Rita", doc.Rows[0].EmployeeName)
	require.Equal(t, "Naranjo, Luis", doc.Rows[1].EmployeeName)
	require.Equal(t, "Núñez, Pedro", doc.Rows[2].EmployeeName)
}

func TestIssueDateUsesSpanishMonth(t *testing.T) {
	svc := NewService(closedPeriodRepo(), nil, nil)
	svc.now = func() time.Time { return time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC) }

	doc, err := svc.BuildReport(context.Background(), 1, RecipientAndrea)
	require.NoError(t, err)
	require.Equal(t, "Chajarí, 1 de septiembre de 2026", doc.IssueDate)
}

type staticRenderer struct{}

func (staticRenderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	return []byte("%PDF-1.7"), nil
}

func TestRenderPDFNamesFileAfterPeriod(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	svc := NewService(closedPeriodRepo(), staticRenderer{}, logger)

	pdf, filename, err := svc.RenderPDF(context.Background(), 1, RecipientEdith)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	require.Equal(t, "Reporte_Noviembre 2025.pdf", filename)
	require.Contains(t, buf.String(), "liquidation report rendered")
}
