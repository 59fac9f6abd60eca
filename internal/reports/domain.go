package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Recipient identifies one of the fixed liquidation note addressees.
type Recipient string

const (
	RecipientAndrea Recipient = "andrea"
	RecipientEdith  Recipient = "edith"
)

// ParseRecipient validates the path segment selecting the note header.
func ParseRecipient(raw string) (Recipient, error) {
	switch Recipient(raw) {
	case RecipientAndrea:
		return RecipientAndrea, nil
	case RecipientEdith:
		return RecipientEdith, nil
	}
	return "", fmt.Errorf("unknown recipient %q", raw)
}

// Header is the fixed addressee block printed at the top of the note.
type Header struct {
	Line1        string `json:"line1"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Organisation string `json:"organisation"`
	Location     string `json:"location"`
}

var headers = map[Recipient]Header{
	RecipientAndrea: {
		Line1:        "A la",
		Name:         "SRA. BALTIERI ANDREA SOLEDAD",
		Title:        "A/C del Área Sueldos",
		Organisation: "del Gobierno de la Ciudad de Chajarí",
		Location:     "S / D",
	},
	RecipientEdith: {
		Line1:        "A la SRA. SHORT, EDITH MARISA",
		Title:        "Encargada del Área Sueldos",
		Organisation: "del Gobierno de la Ciudad de Chajarí",
		Location:     "S / D",
	},
}

// Row is one employee line in the liquidation table.
type Row struct {
	EmployeeName      string          `json:"employee_name"`
	BadgeID           string          `json:"badge_id"`
	DisplayDepartment string          `json:"display_department"`
	Subtotal          decimal.Decimal `json:"subtotal_hours"`
}

// Document is the fully aggregated liquidation note, ready for rendering.
type Document struct {
	ID         string          `json:"id"`
	PeriodName string          `json:"period_name"`
	Header     Header          `json:"header"`
	Rows       []Row           `json:"rows"`
	GrandTotal decimal.Decimal `json:"grand_total_hours"`
	IssueDate  string          `json:"issue_date"`
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatIssueDate renders the note date line, e.g. "Chajarí, 1 de septiembre de 2026".
func FormatIssueDate(t time.Time) string {
	return fmt.Sprintf("Chajarí, %d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}
