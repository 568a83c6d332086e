package models

import "time"

// SyncState is the single mutable replication record: where to mirror local
// writes, and when the last send succeeded. LastSync is advisory only and is
// never consulted for retry decisions.
type SyncState struct {
	EndpointURL string    `json:"scriptUrl"`
	LastSync    time.Time `json:"lastSync"`
}
