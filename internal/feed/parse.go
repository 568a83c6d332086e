package feed

import (
	"math"
	"strconv"
	"strings"

	"github.com/dmoraes/controlog/internal/models"
	"github.com/dmoraes/controlog/internal/timex"
)

// Fixed column order of the published feed. The first row is a header and is
// discarded; rows with fewer than minColumns fields are skipped.
const (
	colCTE = iota
	colSerie
	colCodigo
	colIssueDate
	colWindowDays
	colDeadline
	colStatusText
	colOriginUnit
	colDestinationUnit
	colValue
	colDeliveryFee
	colVolumes
	colWeight
	colPaymentCode
	colConsignee
	colJustification
)

const minColumns = 5

// number parses a feed cell as a float. An empty cell is zero and anything
// unparsable is NaN; both propagate into the record instead of aborting the
// row, matching how the feed's consumers have always treated these cells.
func number(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// field returns the i-th column or "" when the row is short.
func field(cols []string, i int) string {
	if i < len(cols) {
		return cols[i]
	}
	return ""
}

// parseRow maps one trimmed feed row onto a PendingItem.
//
// The deadline is recomputed from issue date plus the prescribed window
// whenever both parse; the recomputed value overrides the feed's own
// deadline column, which acts only as a fallback.
func parseRow(cols []string) models.PendingItem {
	issueDate := field(cols, colIssueDate)
	window := number(field(cols, colWindowDays))

	deadline := field(cols, colDeadline)
	if issued, ok := timex.ParseDate(issueDate); ok && !math.IsNaN(window) {
		deadline = timex.FormatDate(timex.AddDays(issued, int(window)))
	}

	return models.PendingItem{
		CTE:             field(cols, colCTE),
		Serie:           field(cols, colSerie),
		Codigo:          field(cols, colCodigo),
		IssueDate:       issueDate,
		WindowDays:      window,
		Deadline:        deadline,
		StatusText:      field(cols, colStatusText),
		OriginUnit:      field(cols, colOriginUnit),
		DestinationUnit: field(cols, colDestinationUnit),
		Value:           number(field(cols, colValue)),
		DeliveryFee:     number(field(cols, colDeliveryFee)),
		Volumes:         number(field(cols, colVolumes)),
		Weight:          number(field(cols, colWeight)),
		PaymentCode:     field(cols, colPaymentCode),
		Consignee:       field(cols, colConsignee),
		Justification:   field(cols, colJustification),
	}
}

// splitRow breaks one feed line on the field delimiter and strips trailing
// carriage returns and surrounding whitespace from every field.
func splitRow(line string) []string {
	cols := strings.Split(line, ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols
}
