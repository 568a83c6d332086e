package models

// Tier is the urgency classification of a pending item, derived from its
// deadline against a reference window. Values match the feed consumer's
// historical wire names.
type Tier string

const (
	TierForaPrazo   Tier = "FORA_PRAZO"   // deadline already passed
	TierPrioridade  Tier = "PRIORIDADE"   // due today
	TierVenceAmanha Tier = "VENCE_AMANHA" // due tomorrow
	TierNoPrazo     Tier = "NO_PRAZO"     // anything later, or unknown deadline
)

// PendingItem is one row of the remote feed: a shipment document awaiting
// resolution. Items are rebuilt wholesale on every fetch and never persisted;
// the (CTE, Serie) pair is the natural key used to join annotations.
//
// Numeric fields parsed from the feed may be NaN when the source cell is not
// a number.
type PendingItem struct {
	CTE             string  `json:"cte"`
	Serie           string  `json:"serie"`
	Codigo          string  `json:"codigo"`
	IssueDate       string  `json:"dataEmissao"`
	WindowDays      float64 `json:"prazoBaixa"`
	Deadline        string  `json:"dataLimite"`
	StatusText      string  `json:"status"`
	OriginUnit      string  `json:"coleta"`
	DestinationUnit string  `json:"entrega"`
	Value           float64 `json:"valorCte"`
	DeliveryFee     float64 `json:"txEntrega"`
	Volumes         float64 `json:"volumes"`
	Weight          float64 `json:"peso"`
	PaymentCode     string  `json:"fretePago"`
	Consignee       string  `json:"destinatario"`
	Justification   string  `json:"justificativaOriginal"`

	ComputedStatus Tier `json:"computedStatus"`
	HasNotes       bool `json:"hasNotes"`
	NoteCount      int  `json:"noteCount"`
}

// StalledItem is a pending item whose deadline is past the stall grace
// period. DaysStalled counts days past the raw deadline, not past the
// grace threshold.
type StalledItem struct {
	PendingItem
	DaysStalled int `json:"daysStalled"`
}
