package contact

import (
	"time"
)

type Status string

const (
	StatusNew       Status = "new"
	StatusRead      Status = "read"
	StatusResponded Status = "responded"
)

var validStatuses = map[Status]bool{
	StatusNew:       true,
	StatusRead:      true,
	StatusResponded: true,
}

func ValidStatus(status string) bool {
	return validStatuses[Status(status)]
}

type Message struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Message     string     `json:"message"`
	SubmittedAt time.Time  `json:"submittedAt"`
	Status      Status     `json:"status"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Submission is the contact form as posted by a visitor.
type Submission struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,contactemail"`
	Message string `json:"message" binding:"required,min=1,max=1000"`
}

// ListFilter selects a page of messages, newest first.
type ListFilter struct {
	Status string
	Skip   int
	Limit  int
}
