package models

import "time"

// TxAuditEvent is one record of the transaction audit stream.
type TxAuditEvent struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"` // create_event, mint_ticket, create_nft, import_seed
	Digest         string    `json:"digest"`
	Sender         string    `json:"sender"`
	PackageID      string    `json:"packageId"`
	CreatedObjects []string  `json:"createdObjects,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
