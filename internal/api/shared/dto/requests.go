package dto

// ResetCheckpointRequest is the body of POST /api/v1/sync-states/:contract/reset
type ResetCheckpointRequest struct {
	Block *uint64 `json:"block" binding:"required"`
}

// ReconcileRequest is the body of POST /api/v1/reconciliations
type ReconcileRequest struct {
	Contract   string `json:"contract" binding:"required"`
	UpperBound uint64 `json:"upper_bound"`
}
