package api

// CheckResponse is the response for an authorization check.
type CheckResponse struct {
	Allowed    bool   `json:"allowed" description:"Whether the request is allowed"`
	Code       string `json:"code" description:"Decision code"`
	Reason     string `json:"reason,omitempty" description:"Human-readable reason"`
	EvalTimeNs int64  `json:"eval_time_ns" description:"Evaluation time in nanoseconds"`
}

// ListResponse wraps a list of items with pagination metadata.
type ListResponse[T any] struct {
	Items  []T   `json:"items" description:"List of items"`
	Total  int64 `json:"total" description:"Total count"`
	Limit  int   `json:"limit" description:"Page size"`
	Offset int   `json:"offset" description:"Page offset"`
}
