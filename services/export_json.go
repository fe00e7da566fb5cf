package services

import (
	"encoding/json"
	"fmt"
)

// estimateSnapshot is the JSON export shape: the full estimate plus a freshly
// computed totals block.
type estimateSnapshot struct {
	Estimate
	Totals EstimateTotals `json:"totals"`
}

// EstimateJSON renders the estimate and a recomputed totals snapshot as
// pretty-printed JSON.
func EstimateJSON(est Estimate) ([]byte, error) {
	raw, err := json.MarshalIndent(estimateSnapshot{
		Estimate: est,
		Totals:   CalcEstimateTotals(est),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal estimate snapshot: %w", err)
	}
	return raw, nil
}
