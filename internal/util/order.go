package util

import (
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
)

// Orbital caps OrderID at 22 characters.
const maxOrderIDLen = 22

// NewOrderNumber derives a numeric order number from a fresh UUID for
// callers that do not supply one. FNV-1a keeps it deterministic per UUID
// and within the gateway's numeric field limits.
func NewOrderNumber() string {
	return OrderNumberFromUUID(uuid.New())
}

// OrderNumberFromUUID converts a UUID to a numeric order number.
// The same UUID always produces the same number, so retried submissions
// keep their order identity.
func OrderNumberFromUUID(id uuid.UUID) string {
	h := fnv.New64a()
	h.Write(id[:])
	return fmt.Sprintf("%d", h.Sum64())
}

// TruncateOrderID trims an order id to the gateway's 22-character limit.
func TruncateOrderID(orderID string) string {
	if len(orderID) > maxOrderIDLen {
		return orderID[:maxOrderIDLen]
	}
	return orderID
}
