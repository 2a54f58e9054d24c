// Package usecase orchestrates the generation flows: each usecase wires
// a pipeline run to its repositories, owning the pending -> processing
// -> completed/failed record lifecycle. Partial stage output is always
// persisted alongside a failure.
package usecase

import "encoding/json"

func unmarshalColumn(col string, dst any) error {
	return json.Unmarshal([]byte(col), dst)
}
