package models

// Key prefixes and markers that decide which mapping a write lands in.
const (
	SubmissionPrefix = "submission_"
	RedXMarker       = "_x_"
)

// Health status
const (
	StatusOK = "ok"
)

// Request types

// StorageRequest is the body accepted by every /api/storage and /api/red-x
// endpoint. Each endpoint reads only the fields it needs.
type StorageRequest struct {
	Key    string `json:"key"`
	Value  *Value `json:"value"` // nil when absent or null
	Prefix string `json:"prefix"`
	// Any JSON value; only its truthiness matters
	IncludeValues Value `json:"includeValues"`
}

// Response types

type ListItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Items is nil unless values were requested, so it is left out of the
// response entirely rather than sent as an empty list.
type ListResponse struct {
	Keys  []string   `json:"keys"`
	Items []ListItem `json:"items,omitzero"`
}

type GetResponse struct {
	Value *string `json:"value"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
