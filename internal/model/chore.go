package model

import "time"

type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqOneOff  Frequency = "one_off"
	FreqMonthly Frequency = "monthly"
)

type Assignment struct {
	ID        int64     `json:"id"`
	ChildID   int64     `json:"child_id"`
	Title     string    `json:"title"`
	Frequency Frequency `json:"frequency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type CompletionStatus string

const (
	CompletionPending  CompletionStatus = "pending"
	CompletionApproved CompletionStatus = "approved"
	CompletionRejected CompletionStatus = "rejected"
)

type Completion struct {
	ID           int64            `json:"id"`
	AssignmentID int64            `json:"assignment_id"`
	ChildID      int64            `json:"child_id"`
	Status       CompletionStatus `json:"status"`
	CompletedAt  time.Time        `json:"completed_at"`
	ApprovedAt   *time.Time       `json:"approved_at"`
}
