package domain

import (
	"errors"
	"time"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionStatusSubmitted is the initial status of every submission. The
// owning teacher may later overwrite it (e.g. "graded").
const SubmissionStatusSubmitted = "submitted"

// Submission is a student's answer to an assignment. StudentID is always the
// ID of a student; AssignmentID links back to the assignment being answered.
type Submission struct {
	ID              string    `json:"id"`
	AssignmentID    string    `json:"assignment_id"`
	StudentID       string    `json:"student_id"`
	StudentUsername string    `json:"student_username"`
	Text            string    `json:"text"`
	AttachmentURL   string    `json:"attachment_url,omitempty"`
	Status          string    `json:"status"`
	SubmittedAt     time.Time `json:"submitted_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
