package domain

import (
	"errors"
	"time"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

// Assignment is published by a teacher for a single class level. CreatedBy is
// always the ID of a teacher; ownership never changes after creation.
type Assignment struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DueDate       time.Time  `json:"due_date"`
	ClassLevel    ClassLevel `json:"class_level"`
	AttachmentURL string     `json:"attachment_url,omitempty"`
	CreatedBy     string     `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
