package dto

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=80"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=80"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
}
