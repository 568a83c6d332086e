package models

import "time"

// Note is an immutable, timestamped justification a user attached to a
// shipment document. Notes are append-only: the engine creates and reads
// them, never edits or deletes.
//
// JSON tags follow the replication endpoint's field names so an existing
// collector keeps accepting our payloads unchanged.
type Note struct {
	ID              string    `json:"id"`
	CTE             string    `json:"cte"`
	Serie           string    `json:"serie"`
	User            string    `json:"user"`
	Content         string    `json:"content"`
	Timestamp       time.Time `json:"timestamp"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	OriginUnit      string    `json:"originUnit"`
	DestinationUnit string    `json:"destinationUnit"`
	ReadByOrigin    bool      `json:"isReadByOrigin"`
}
