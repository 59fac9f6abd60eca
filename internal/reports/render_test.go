package reports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildHTMLEscapesAndTotals(t *testing.T) {
	doc := Document{
		PeriodName: "Enero <2026>",
		Header:     headers[RecipientAndrea],
		Rows: []Row{
			{EmployeeName: "O'BRIEN, JUAN", BadgeID: "42", DisplayDepartment: "Obras & Servicios", Subtotal: dec("12.5")},
		},
		GrandTotal: dec("12.5"),
		IssueDate:  "Chajarí, 1 de enero de 2026",
	}

	html := buildHTML(doc)
	require.Contains(t, html, "Enero &lt;2026&gt;")
	require.Contains(t, html, "O&#39;BRIEN, JUAN")
	require.Contains(t, html, "Obras &amp; Servicios")
	require.Contains(t, html, "SRA. BALTIERI ANDREA SOLEDAD")
	require.Contains(t, html, ">12.5<")
	require.False(t, strings.Contains(html, "<2026>"))
}
