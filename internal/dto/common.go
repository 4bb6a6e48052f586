package dto

// ─── Wire envelope ───────────────────────────────────────────────────────────
// Every endpoint responds with the same envelope:
//   list:     {success, data: {data: [...], pagination}}
//   mutation: {success, data: {message, data}}
//   delete:   {success}
//   error:    {success: false, error}

type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListPayload is the data block of every list response.
type ListPayload[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// MutationPayload is the data block of every create/update response.
type MutationPayload[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Pagination is the server-reported paging block.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// DefaultPagination is what callers receive when a list fetch fails and the
// client degrades to an empty result set.
func DefaultPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return Pagination{CurrentPage: page, TotalPages: 1, TotalItems: 0, ItemsPerPage: limit}
}

// NewPagination derives the paging block from a total count, clamping the
// current page into [1, totalPages].
func NewPagination(page, limit int, totalItems int64) Pagination {
	if limit < 1 {
		limit = 20
	}
	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: limit,
	}
}

// ListFilter is the shared query-string filter for list endpoints.
type ListFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// Normalize clamps page and limit into their valid ranges. Handlers call it
// after query binding so repositories never see a zero or oversized window.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}
