package store

import (
	"time"

	"cloud.google.com/go/firestore"
)

// reservedFields are never caller-settable: the identifier is positional and
// timestamps are assigned by the access layer.
var reservedFields = map[string]bool{
	"id":        true,
	"createdAt": true,
	"updatedAt": true,
}

// UpdatesFromFields converts a partial field overlay into Firestore updates.
// Reserved fields in the input are discarded and updatedAt is force-set to
// now, so callers can pass a decoded request body through unfiltered.
func UpdatesFromFields(fields map[string]any, now time.Time) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for key, value := range fields {
		if reservedFields[key] {
			continue
		}
		updates = append(updates, firestore.Update{Path: key, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: now})
	return updates
}
