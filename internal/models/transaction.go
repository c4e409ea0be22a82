package models

import (
	"time"
)

type Transaction struct {
	ID        string    `dynamodbav:"id" json:"id"`
	UserID    string    `dynamodbav:"userId" json:"userId"` // owner, always server-set
	Type      string    `dynamodbav:"type" json:"type"`
	Amount    float64   `dynamodbav:"amount" json:"amount"`
	Category  string    `dynamodbav:"category" json:"category"`
	Date      string    `dynamodbav:"date" json:"date"` // YYYY-MM-DD as clients submit it
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `dynamodbav:"updatedAt" json:"updatedAt"`
}
