package models

import (
	"fmt"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// RadicalTable is the SurrealDB table holding published rows.
const RadicalTable = "radical"

// RadicalRecordID returns the record ID for radical n ("radical:n").
func RadicalRecordID(n int) surrealmodels.RecordID {
	return surrealmodels.NewRecordID(RadicalTable, n)
}

// RecordIDNumber extracts the radical number from a SurrealDB RecordID.
// CBOR decoding yields different integer types depending on magnitude and sign.
func RecordIDNumber(id surrealmodels.RecordID) (int, error) {
	switch v := id.ID.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("unexpected ID type: %T (expected integer)", id.ID)
	}
}
