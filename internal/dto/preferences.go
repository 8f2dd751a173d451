package dto

// UpdatePreferencesRequest patches one table's preferences; nil fields are left untouched.
type UpdatePreferencesRequest struct {
	PageSize *int    `json:"pageSize,omitempty" validate:"omitempty,min=1,max=200"`
	Page     *int    `json:"page,omitempty" validate:"omitempty,min=1"`
	Tab      *string `json:"tab,omitempty" validate:"omitempty,max=64"`
}
