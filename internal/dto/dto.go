// Package dto defines the request and response shapes of the HTTP API.
// Requests carry validate tags consumed by util.ValidateStruct; responses
// decode the jsonb columns persisted by the repositories.
package dto

import "encoding/json"

// unmarshalJSONB decodes a jsonb column into dst, leaving dst zero on a
// broken or empty column.
func unmarshalJSONB(col string, dst any) {
	if col == "" {
		return
	}
	_ = json.Unmarshal([]byte(col), dst)
}
