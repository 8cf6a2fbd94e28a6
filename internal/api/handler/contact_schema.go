package handler

type createContactRequest struct {
	PhoneNumber string   `json:"phoneNumber" validate:"required"`
	Name        string   `json:"name"`
	Email       string   `json:"email"       validate:"omitempty,email"`
	Company     string   `json:"company"`
	Tags        []string `json:"tags"`
	Notes       string   `json:"notes"`
}

type updateContactRequest struct {
	Name     *string   `json:"name"     validate:"omitempty,min=1"`
	Email    *string   `json:"email"    validate:"omitempty,email"`
	Company  *string   `json:"company"`
	Tags     *[]string `json:"tags"`
	Notes    *string   `json:"notes"`
	IsActive *bool     `json:"isActive"`
}
