package reports

import (
	"fmt"
	"strings"
)

// buildHTML assembles the printable liquidation note handed to Gotenberg.
func buildHTML(doc Document) string {
	var b strings.Builder
	b.WriteString("<html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{font-family:serif;margin:48px;font-size:13px;}h1{font-size:16px;text-align:center;margin-bottom:24px;}")
	b.WriteString("table{width:100%;border-collapse:collapse;margin-top:24px;}th,td{border:1px solid #444;padding:6px;}")
	b.WriteString("th{background:#eee;text-align:left;}td.hours{text-align:right;}tfoot td{font-weight:bold;}")
	b.WriteString(".date{text-align:right;margin-bottom:32px;}.addressee{margin-bottom:24px;line-height:1.5;}")
	b.WriteString("</style></head><body>")

	b.WriteString("<p class=\"date\">")
	b.WriteString(htmlEscape(doc.IssueDate))
	b.WriteString("</p>")

	b.WriteString("<div class=\"addressee\">")
	for _, line := range []string{doc.Header.Line1, doc.Header.Name, doc.Header.Title, doc.Header.Organisation, doc.Header.Location} {
		if line == "" {
			continue
		}
		b.WriteString(htmlEscape(line))
		b.WriteString("<br>")
	}
	b.WriteString("</div>")

	b.WriteString(fmt.Sprintf("<h1>Liquidación de Horas Extras – %s</h1>", htmlEscape(doc.PeriodName)))

	b.WriteString("<table><thead><tr><th>Legajo</th><th>Agente</th><th>Área</th><th>Total Horas</th></tr></thead><tbody>")
	for _, row := range doc.Rows {
		b.WriteString("<tr><td>")
		b.WriteString(htmlEscape(row.BadgeID))
		b.WriteString("</td><td>")
		b.WriteString(htmlEscape(row.EmployeeName))
		b.WriteString("</td><td>")
		b.WriteString(htmlEscape(row.DisplayDepartment))
		b.WriteString("</td><td class=\"hours\">")
		b.WriteString(row.Subtotal.StringFixed(1))
		b.WriteString("</td></tr>")
	}
	b.WriteString("</tbody><tfoot><tr><td colspan=\"3\">Total General</td><td class=\"hours\">")
	b.WriteString(doc.GrandTotal.StringFixed(1))
	b.WriteString("</td></tr></tfoot></table>")

	b.WriteString("</body></html>")
	return b.String()
}

func htmlEscape(v string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(v)
}
