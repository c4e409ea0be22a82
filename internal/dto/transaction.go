package dto

type CreateTransactionRequest struct {
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

// UpdateTransactionRequest carries a partial update; nil fields are left untouched.
type UpdateTransactionRequest struct {
	Type     *string  `json:"type,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`
	Category *string  `json:"category,omitempty"`
	Date     *string  `json:"date,omitempty"`
}
