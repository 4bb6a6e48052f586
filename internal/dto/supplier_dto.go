package dto

type CreateSupplierRequest struct {
	Name          string  `json:"name"           validate:"required,min=2,max=120"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"          validate:"omitempty,min=6,max=20"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Address       *string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name"           validate:"omitempty,min=2,max=120"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"          validate:"omitempty,min=6,max=20"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Address       *string `json:"address"`
	Active        *bool   `json:"active"`
}

type SupplierResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	Active        bool    `json:"active"`
}
