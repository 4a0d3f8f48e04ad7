// Package entity contains the core business objects of the project.
package entity

import "time"

// Question is a user-submitted question handled through the admin console.
// Answer stays nil until an admin posts one; the unanswered queue is exactly
// the set of documents where Answer is null.
type Question struct {
	ID        string    `json:"id"`               // Document key.
	UserID    string    `json:"userId,omitempty"` // Asking user, when known.
	Question  string    `json:"question"`         // The question text.
	Answer    *string   `json:"answer"`           // Nil until answered.
	CreatedAt time.Time `json:"createdAt"`        // Server-assigned.
}

// Answered reports whether an admin has posted an answer.
func (q *Question) Answered() bool {
	return q.Answer != nil
}
