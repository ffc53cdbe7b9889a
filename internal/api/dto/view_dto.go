package dto

// StatusFilterRequest payload; "all" disables status filtering.
type StatusFilterRequest struct {
	Status string `json:"status"`
}

// SearchRequest payload.
type SearchRequest struct {
	Term string `json:"term"`
}

// SortRequest payload.
type SortRequest struct {
	SortBy string `json:"sortBy"`
}

// ToastRequest payload.
type ToastRequest struct {
	Message string `json:"message"`
}
