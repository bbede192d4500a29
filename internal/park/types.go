// Package park provides read access to park records stored in DynamoDB.
package park

import "github.com/parkreso/parkreso-api/internal/dynamo"

// Record is a park item with the DynamoDB attribute encoding removed.
// Attribute names are kept as stored, including pk and sk.
type Record map[string]any

// ID returns the park identifier (the item sort key).
func (r Record) ID() string {
	id, _ := r[dynamo.AttrSK].(string)
	return id
}

// Visible reports whether non-admin callers may see the record.
// Items without a boolean visible attribute are hidden.
func (r Record) Visible() bool {
	v, _ := r[AttrVisible].(bool)
	return v
}
