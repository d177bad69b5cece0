package models

import (
	"time"
)

// Collection names.
const (
	CollectionUsers     = "users"
	CollectionOrders    = "orders"
	CollectionDocuments = "pdfDetails"
)

const StatusPending = "pending"

// Order fields the server owns. A client payload can never set them.
const (
	FieldID              = "_id"
	FieldUserLoginNumber = "userLoginNumber"
	FieldStatus          = "status"
	FieldCreatedAt       = "createdAt"
)

var serverOwned = []string{FieldID, FieldUserLoginNumber, FieldStatus, FieldCreatedAt}

// NewOrder builds the stored order from a client payload: server-owned
// fields are dropped, then set to the caller's phone, pending and now.
func NewOrder(payload map[string]any, phone string, now time.Time) map[string]any {
	doc := make(map[string]any, len(payload)+3)
	for k, v := range payload {
		doc[k] = v
	}
	for _, k := range serverOwned {
		delete(doc, k)
	}
	doc[FieldUserLoginNumber] = phone
	doc[FieldStatus] = StatusPending
	doc[FieldCreatedAt] = now.UTC()
	return doc
}
