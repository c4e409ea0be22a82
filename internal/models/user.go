package models

type User struct {
	ID    string `dynamodbav:"id" json:"id"`
	Email string `dynamodbav:"email" json:"email"`
	// PasswordHash is never serialized to HTTP responses.
	PasswordHash string `dynamodbav:"password" json:"-"`
}
